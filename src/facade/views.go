package facade

import (
	"context"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

// ListViews lists all views at the server root.
func (f *Facade) ListViews(ctx context.Context) ([]jenkins.View, error) {
	views, err := f.client.Views(ctx)
	if err != nil {
		return nil, wrap(err, ResourceView, "")
	}
	return views, nil
}

// ViewInfo fetches a view and its member jobs.
func (f *Facade) ViewInfo(ctx context.Context, name string) (*jenkins.View, error) {
	view, err := f.client.ViewInfo(ctx, name)
	if err != nil {
		return nil, wrap(err, ResourceView, name)
	}
	return view, nil
}

// CreateView creates a view of the given type ("list" or "my"). The type is
// validated against the closed set before any network call, and the name
// must be free.
func (f *Facade) CreateView(ctx context.Context, name, viewType string) (Result, error) {
	form, err := payload.ViewForm(name, viewType)
	if err != nil {
		return Result{}, wrap(err, ResourceView, name)
	}
	if err := requireAbsent(ctx, ResourceView, name, f.viewExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.CreateView(ctx, form); err != nil {
		return Result{}, wrap(err, ResourceView, name)
	}
	return ok("view %s created", name), nil
}

// DeleteView deletes an existing view.
func (f *Facade) DeleteView(ctx context.Context, name string) (Result, error) {
	if err := requirePresent(ctx, ResourceView, name, f.viewExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.DeleteView(ctx, name); err != nil {
		return Result{}, wrap(err, ResourceView, name)
	}
	return ok("view %s deleted", name), nil
}

// AddJobToView adds a job to a view. Both the view and the job must exist;
// the view is checked first.
func (f *Facade) AddJobToView(ctx context.Context, view, job string) (Result, error) {
	if err := requirePresent(ctx, ResourceView, view, f.viewExists(view)); err != nil {
		return Result{}, err
	}
	if err := requirePresent(ctx, ResourceJob, job, f.jobExists(job)); err != nil {
		return Result{}, err
	}
	if err := f.client.AddJobToView(ctx, view, job); err != nil {
		return Result{}, wrap(err, ResourceView, view)
	}
	return ok("job %s added to view %s", job, view), nil
}

// RemoveJobFromView removes a job from a view's membership.
func (f *Facade) RemoveJobFromView(ctx context.Context, view, job string) (Result, error) {
	if err := requirePresent(ctx, ResourceView, view, f.viewExists(view)); err != nil {
		return Result{}, err
	}
	if err := f.client.RemoveJobFromView(ctx, view, job); err != nil {
		return Result{}, wrap(err, ResourceView, view)
	}
	return ok("job %s removed from view %s", job, view), nil
}
