package facade

import (
	"errors"
	"fmt"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

// Kind is the error taxonomy every failure crossing the facade boundary is
// mapped onto. No raw transport error or status code escapes unmapped.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindAlreadyExists     Kind = "already_exists"
	KindUnsupportedKind   Kind = "unsupported_kind"
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidRequest    Kind = "invalid_request"
	KindRemoteUnavailable Kind = "remote_unavailable"
)

// Resource kinds used in error messages.
const (
	ResourceJob        = "job"
	ResourceFolder     = "folder"
	ResourceBuild      = "build"
	ResourceQueueItem  = "queue item"
	ResourceNode       = "node"
	ResourceView       = "view"
	ResourceCredential = "credential"
	ResourcePlugin     = "plugin"
	ResourceServer     = "server"
)

// Error is the single error shape surfaced to callers. It always names the
// resource kind and identifier involved.
type Error struct {
	Kind     Kind
	Resource string
	ID       string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %s", e.Resource, e.ID, e.reason())
	if e.ID == "" {
		msg = fmt.Sprintf("%s: %s", e.Resource, e.reason())
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) reason() string {
	switch e.Kind {
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindUnsupportedKind:
		return "unsupported kind"
	case KindUnauthorized:
		return "credentials rejected"
	case KindInvalidRequest:
		return "request rejected"
	case KindRemoteUnavailable:
		return "server unavailable"
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// notFound builds a NotFound error for a resource.
func notFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, ID: id}
}

// alreadyExists builds an AlreadyExists error for a resource.
func alreadyExists(resource, id string) *Error {
	return &Error{Kind: KindAlreadyExists, Resource: resource, ID: id}
}

// wrap maps any error onto the taxonomy, attaching resource kind and id.
// Errors already carrying a Kind pass through untouched so the innermost
// context wins.
func wrap(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}

	kind := KindRemoteUnavailable
	switch {
	case errors.Is(err, jenkins.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, jenkins.ErrUnauthorized):
		kind = KindUnauthorized
	case errors.Is(err, jenkins.ErrInvalidRequest):
		kind = KindInvalidRequest
	case errors.Is(err, payload.ErrUnsupportedKind):
		kind = KindUnsupportedKind
	}
	return &Error{Kind: kind, Resource: resource, ID: id, Err: err}
}

// KindOf extracts the taxonomy kind from an error, defaulting to
// RemoteUnavailable for anything unrecognized.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindRemoteUnavailable
}
