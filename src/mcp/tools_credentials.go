package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
	"jenkins-agent/src/payload"
)

// registerCredentialTools registers credential store tools. Secret values are
// accepted on create but never echoed back; listings carry metadata only.
func (s *Server) registerCredentialTools() {
	s.addTool(mcp.NewTool("list_credentials",
		mcp.WithDescription("List credential metadata in a domain. Secret values are never returned."),
		mcp.WithString("domain",
			mcp.Description("Credential domain (default: the global domain)"),
		),
	), s.handleListCredentials)

	s.addTool(mcp.NewTool("get_credential_domains",
		mcp.WithDescription("List credential domains configured on the server."),
	), s.handleCredentialDomains)

	s.addTool(mcp.NewTool("create_credential",
		mcp.WithDescription("Create a credential. Supported kinds: 'usernamePassword' (username, password), 'string' (secret), 'sshUserPrivateKey' (username, private_key, passphrase)."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Credential id, unique within the domain"),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Credential kind: 'usernamePassword', 'string' or 'sshUserPrivateKey'"),
		),
		mcp.WithString("description",
			mcp.Description("Credential description"),
		),
		mcp.WithString("domain",
			mcp.Description("Credential domain (default: the global domain)"),
		),
		mcp.WithObject("data",
			mcp.Description("Kind-specific fields, e.g. username and password"),
		),
	), s.handleCreateCredential)

	s.addTool(mcp.NewTool("delete_credential",
		mcp.WithDescription("Delete a credential by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Credential id"),
		),
		mcp.WithString("domain",
			mcp.Description("Credential domain (default: the global domain)"),
		),
	), s.handleDeleteCredential)
}

func (s *Server) handleListCredentials(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain := request.GetString("domain", "")
	creds, err := s.facade.ListCredentials(ctx, domain)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(creds)
}

func (s *Server) handleCredentialDomains(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domains, err := s.facade.CredentialDomains(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(domains)
}

func (s *Server) handleCreateCredential(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	kind := request.GetString("kind", "")
	if kind == "" {
		return mcp.NewToolResultError("kind parameter is required"), nil
	}
	domain := request.GetString("domain", "")

	spec := payload.CredentialSpec{
		Kind:        kind,
		ID:          id,
		Description: request.GetString("description", ""),
		Data:        credentialData(request.GetArguments()),
	}

	return s.mutation(ctx, "create_credential", facade.ResourceCredential, id, func(ctx context.Context) (facade.Result, error) {
		return s.facade.CreateCredential(ctx, domain, spec)
	})
}

// credentialData flattens the data argument into kind-specific string fields.
func credentialData(args map[string]interface{}) map[string]string {
	raw, ok := args["data"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	data := make(map[string]string, len(raw))
	for k, v := range raw {
		data[k] = fmt.Sprintf("%v", v)
	}
	return data
}

func (s *Server) handleDeleteCredential(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	domain := request.GetString("domain", "")

	return s.mutation(ctx, "delete_credential", facade.ResourceCredential, id, func(ctx context.Context) (facade.Result, error) {
		return s.facade.DeleteCredential(ctx, domain, id)
	})
}
