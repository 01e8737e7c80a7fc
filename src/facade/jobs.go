package facade

import (
	"context"
	"strings"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

// ListJobs lists jobs at the server root or inside a folder.
func (f *Facade) ListJobs(ctx context.Context, folder string) ([]jenkins.JobSummary, error) {
	resource := ResourceJob
	id := folder
	jobs, err := f.client.Jobs(ctx, folder)
	if err != nil {
		if folder != "" {
			resource = ResourceFolder
		}
		return nil, wrap(err, resource, id)
	}
	return jobs, nil
}

// JobInfo fetches the full job record for a qualified name.
func (f *Facade) JobInfo(ctx context.Context, name string) (*jenkins.Job, error) {
	job, err := f.client.JobInfo(ctx, name)
	if err != nil {
		return nil, wrap(err, ResourceJob, name)
	}
	return job, nil
}

// JobConfig fetches the job's config.xml.
func (f *Facade) JobConfig(ctx context.Context, name string) (string, error) {
	cfg, err := f.client.JobConfig(ctx, name)
	return cfg, wrap(err, ResourceJob, name)
}

// UpdateJobConfig replaces a job's config.xml. The job must exist.
func (f *Facade) UpdateJobConfig(ctx context.Context, name, configXML string) (Result, error) {
	if err := requirePresent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.UpdateJobConfig(ctx, name, configXML); err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	return ok("configuration updated for job %s", name), nil
}

// CreateJob creates a job from config.xml. The target name must be free.
func (f *Facade) CreateJob(ctx context.Context, name, configXML string) (Result, error) {
	if err := requireAbsent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.CreateItem(ctx, name, []byte(configXML)); err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	return ok("job %s created", name), nil
}

// DeleteJob deletes an existing job.
func (f *Facade) DeleteJob(ctx context.Context, name string) (Result, error) {
	if err := requirePresent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.DeleteJob(ctx, name); err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	return ok("job %s deleted", name), nil
}

// CopyJob copies a job to a new name. The source is checked first so a
// missing source is always the error reported, then the target must be free.
func (f *Facade) CopyJob(ctx context.Context, source, target string) (Result, error) {
	if err := requirePresent(ctx, ResourceJob, source, f.jobExists(source)); err != nil {
		return Result{}, err
	}
	if err := requireAbsent(ctx, ResourceJob, target, f.jobExists(target)); err != nil {
		return Result{}, err
	}
	if err := f.client.CopyItem(ctx, source, target); err != nil {
		return Result{}, wrap(err, ResourceJob, target)
	}
	return ok("job copied from %s to %s", source, target), nil
}

// EnableJob enables a job. Calling it on an already-enabled job is a no-op
// reported as informational; no mutating call is issued.
func (f *Facade) EnableJob(ctx context.Context, name string) (Result, error) {
	job, err := f.client.JobInfo(ctx, name)
	if err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	if !job.Disabled {
		return info("job %s is already enabled", name), nil
	}
	if err := f.client.EnableJob(ctx, name); err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	return ok("job %s enabled", name), nil
}

// DisableJob disables a job with the same idempotent-toggle contract as
// EnableJob.
func (f *Facade) DisableJob(ctx context.Context, name string) (Result, error) {
	job, err := f.client.JobInfo(ctx, name)
	if err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	if job.Disabled {
		return info("job %s is already disabled", name), nil
	}
	if err := f.client.DisableJob(ctx, name); err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	return ok("job %s disabled", name), nil
}

// RenameJob renames a job. Source is checked before target.
func (f *Facade) RenameJob(ctx context.Context, name, newName string) (Result, error) {
	if err := requirePresent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return Result{}, err
	}
	if err := requireAbsent(ctx, ResourceJob, newName, f.jobExists(newName)); err != nil {
		return Result{}, err
	}
	if err := f.client.RenameJob(ctx, name, newName); err != nil {
		return Result{}, wrap(err, ResourceJob, name)
	}
	return ok("job renamed from %s to %s", name, newName), nil
}

// CreateFolder creates a folder with an optional description.
func (f *Facade) CreateFolder(ctx context.Context, name, description string) (Result, error) {
	doc, err := payload.FolderXML(description)
	if err != nil {
		return Result{}, wrap(err, ResourceFolder, name)
	}
	if err := requireAbsent(ctx, ResourceFolder, name, f.jobExists(name)); err != nil {
		return Result{}, err
	}
	if err := f.client.CreateItem(ctx, name, doc); err != nil {
		return Result{}, wrap(err, ResourceFolder, name)
	}
	return ok("folder %s created", name), nil
}

// SearchJobs matches jobs whose qualified name contains the query,
// case-insensitively. Top-level folders are descended one level, matching
// the behavior callers expect from the job search operation.
func (f *Facade) SearchJobs(ctx context.Context, query string) ([]jenkins.JobSummary, error) {
	top, err := f.client.Jobs(ctx, "")
	if err != nil {
		return nil, wrap(err, ResourceJob, "")
	}

	all := make([]jenkins.JobSummary, 0, len(top))
	all = append(all, top...)
	for _, j := range top {
		if !j.IsFolder() {
			continue
		}
		children, err := f.client.Jobs(ctx, j.Name)
		if err != nil {
			// A folder that vanished or denied access does not fail the
			// whole search.
			f.log.Debug("search: skipping folder %s: %v", j.Name, err)
			continue
		}
		for _, child := range children {
			if child.FullName == "" {
				child.FullName = j.Name + "/" + child.Name
			}
			all = append(all, child)
		}
	}

	q := strings.ToLower(query)
	var matched []jenkins.JobSummary
	for _, j := range all {
		name := j.FullName
		if name == "" {
			name = j.Name
		}
		if strings.Contains(strings.ToLower(name), q) {
			matched = append(matched, j)
		}
	}
	return matched, nil
}
