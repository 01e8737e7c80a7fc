// Package facade exposes the Jenkins operation catalog behind one uniform
// result and error contract. Every mutating operation runs its precondition
// checks (existence, current state) through fresh reads before touching the
// remote endpoint; the remote server's own rejection remains the final
// authority for races the checks cannot close.
package facade

import (
	"context"
	"fmt"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/logger"
)

// Result statuses. StatusInfo marks informational outcomes such as an
// idempotent toggle that found the requested state already in place; it is
// success-shaped and must not be treated as an error.
const (
	StatusSuccess = "success"
	StatusInfo    = "info"
)

// Result is the outcome of a mutating operation.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ok builds a success result.
func ok(format string, args ...interface{}) Result {
	return Result{Status: StatusSuccess, Message: fmt.Sprintf(format, args...)}
}

// info builds an informational (already-in-state) result.
func info(format string, args ...interface{}) Result {
	return Result{Status: StatusInfo, Message: fmt.Sprintf(format, args...)}
}

// Facade is the resource facade over one Jenkins connection. Construct it
// once with a live client and reuse it across independent calls; it holds no
// locks and no cached state.
type Facade struct {
	client *jenkins.Client
	log    logger.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLogger sets the facade logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Facade) { f.log = l }
}

// New creates a Facade over an authenticated client.
func New(client *jenkins.Client, opts ...Option) *Facade {
	f := &Facade{
		client: client,
		log:    logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// existsFunc probes a resource with a fresh read. It returns false only on a
// confirmed NotFound; any other failure propagates so that a transport
// outage is never conflated with "confirmed absent".
type existsFunc func(ctx context.Context) (bool, error)

// interpretExists converts a read outcome into an existence verdict.
func interpretExists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if KindOf(wrapProbe(err)) == KindNotFound {
		return false, nil
	}
	return false, err
}

// wrapProbe maps a raw probe error without attaching resource context; the
// precondition helpers add that when they surface the error.
func wrapProbe(err error) error {
	return wrap(err, ResourceServer, "")
}

// requirePresent fails with NotFound when the resource does not exist, and
// aborts with the underlying error when the probe itself is ambiguous.
func requirePresent(ctx context.Context, resource, id string, exists existsFunc) error {
	found, err := exists(ctx)
	if err != nil {
		return wrap(err, resource, id)
	}
	if !found {
		return notFound(resource, id)
	}
	return nil
}

// requireAbsent fails with AlreadyExists when the resource exists, and
// aborts with the underlying error when the probe itself is ambiguous.
func requireAbsent(ctx context.Context, resource, id string, exists existsFunc) error {
	found, err := exists(ctx)
	if err != nil {
		return wrap(err, resource, id)
	}
	if found {
		return alreadyExists(resource, id)
	}
	return nil
}

// jobExists probes a job by qualified name.
func (f *Facade) jobExists(name string) existsFunc {
	return func(ctx context.Context) (bool, error) {
		_, err := f.client.JobInfo(ctx, name)
		return interpretExists(err)
	}
}

// nodeExists probes a node by name.
func (f *Facade) nodeExists(name string) existsFunc {
	return func(ctx context.Context) (bool, error) {
		_, err := f.client.NodeInfo(ctx, name)
		return interpretExists(err)
	}
}

// viewExists probes a view by name.
func (f *Facade) viewExists(name string) existsFunc {
	return func(ctx context.Context) (bool, error) {
		_, err := f.client.ViewInfo(ctx, name)
		return interpretExists(err)
	}
}

// credentialExists probes a credential by (domain, id).
func (f *Facade) credentialExists(domain, id string) existsFunc {
	return func(ctx context.Context) (bool, error) {
		_, err := f.client.CredentialInfo(ctx, domain, id)
		return interpretExists(err)
	}
}

// queueItemExists probes a queue item by id. An item converted to a build or
// expired reads as absent.
func (f *Facade) queueItemExists(id int64) existsFunc {
	return func(ctx context.Context) (bool, error) {
		_, err := f.client.QueueItem(ctx, id)
		return interpretExists(err)
	}
}
