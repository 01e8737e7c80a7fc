package facade

import (
	"context"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

// ListNodes lists all agent nodes, including the controller.
func (f *Facade) ListNodes(ctx context.Context) ([]jenkins.Computer, error) {
	set, err := f.client.Computers(ctx)
	if err != nil {
		return nil, wrap(err, ResourceNode, "")
	}
	return set.Computers, nil
}

// NodeInfo fetches a single node by name.
func (f *Facade) NodeInfo(ctx context.Context, name string) (*jenkins.Computer, error) {
	node, err := f.client.NodeInfo(ctx, name)
	if err != nil {
		return nil, wrap(err, ResourceNode, name)
	}
	return node, nil
}

// CreateNode creates an agent node. The launcher kind is validated against
// the closed set before any network call, and the name must be free.
func (f *Facade) CreateNode(ctx context.Context, spec payload.NodeSpec) (Result, error) {
	form, err := payload.NodeForm(spec)
	if err != nil {
		return Result{}, wrap(err, ResourceNode, spec.Name)
	}
	if err := requireAbsent(ctx, ResourceNode, spec.Name, f.nodeExists(spec.Name)); err != nil {
		return Result{}, err
	}
	if err := f.client.CreateNode(ctx, form); err != nil {
		return Result{}, wrap(err, ResourceNode, spec.Name)
	}
	return ok("node %s created", spec.Name), nil
}

// DeleteNode removes an existing agent node.
func (f *Facade) DeleteNode(ctx context.Context, name string) (Result, error) {
	if err := requirePresent(ctx, ResourceNode, name, f.nodeExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.DeleteNode(ctx, name); err != nil {
		return Result{}, wrap(err, ResourceNode, name)
	}
	return ok("node %s deleted", name), nil
}

// EnableNode brings a node back online. Enabling an online node is a no-op
// reported as informational; no mutating call is issued.
func (f *Facade) EnableNode(ctx context.Context, name string) (Result, error) {
	node, err := f.client.NodeInfo(ctx, name)
	if err != nil {
		return Result{}, wrap(err, ResourceNode, name)
	}
	if !node.Offline {
		return info("node %s is already online", name), nil
	}
	if err := f.client.ToggleNodeOffline(ctx, name, ""); err != nil {
		return Result{}, wrap(err, ResourceNode, name)
	}
	return ok("node %s enabled", name), nil
}

// DisableNode takes a node offline with an optional explanatory message,
// with the same idempotent-toggle contract as EnableNode.
func (f *Facade) DisableNode(ctx context.Context, name, message string) (Result, error) {
	node, err := f.client.NodeInfo(ctx, name)
	if err != nil {
		return Result{}, wrap(err, ResourceNode, name)
	}
	if node.Offline {
		return info("node %s is already offline", name), nil
	}
	if err := f.client.ToggleNodeOffline(ctx, name, message); err != nil {
		return Result{}, wrap(err, ResourceNode, name)
	}
	return ok("node %s disabled", name), nil
}
