package facade

import (
	"context"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

const defaultCredentialDomain = "_"

// ListCredentials lists credential metadata in a domain. An empty domain
// means the global domain.
func (f *Facade) ListCredentials(ctx context.Context, domain string) ([]jenkins.Credential, error) {
	if domain == "" {
		domain = defaultCredentialDomain
	}
	creds, err := f.client.Credentials(ctx, domain)
	if err != nil {
		return nil, wrap(err, ResourceCredential, domain)
	}
	return creds, nil
}

// CredentialDomains lists the credential domains configured on the server.
func (f *Facade) CredentialDomains(ctx context.Context) ([]jenkins.CredentialDomain, error) {
	domains, err := f.client.CredentialDomains(ctx)
	if err != nil {
		return nil, wrap(err, ResourceCredential, "")
	}
	return domains, nil
}

// CreateCredential creates a credential from a kind-specific spec. The kind
// is validated against the closed set before any network call, and the id
// must be free in the target domain.
func (f *Facade) CreateCredential(ctx context.Context, domain string, spec payload.CredentialSpec) (Result, error) {
	if domain == "" {
		domain = defaultCredentialDomain
	}
	form, err := payload.CredentialForm(spec)
	if err != nil {
		return Result{}, wrap(err, ResourceCredential, spec.ID)
	}
	if err := requireAbsent(ctx, ResourceCredential, spec.ID, f.credentialExists(domain, spec.ID)); err != nil {
		return Result{}, err
	}
	if err := f.client.CreateCredential(ctx, domain, form); err != nil {
		return Result{}, wrap(err, ResourceCredential, spec.ID)
	}
	return ok("credential %s created in domain %s", spec.ID, domain), nil
}

// DeleteCredential removes a credential by id from a domain.
func (f *Facade) DeleteCredential(ctx context.Context, domain, id string) (Result, error) {
	if domain == "" {
		domain = defaultCredentialDomain
	}
	if err := requirePresent(ctx, ResourceCredential, id, f.credentialExists(domain, id)); err != nil {
		return Result{}, err
	}
	if err := f.client.DeleteCredential(ctx, domain, id); err != nil {
		return Result{}, wrap(err, ResourceCredential, id)
	}
	return ok("credential %s deleted from domain %s", id, domain), nil
}
