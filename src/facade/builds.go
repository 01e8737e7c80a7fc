package facade

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/sanitize"
)

// TriggerResult is the outcome of a build trigger: the queue item id the
// server assigned. The build number is not final until the job is re-read.
type TriggerResult struct {
	Result
	QueueID int64 `json:"queue_id,omitempty"`
}

// TriggerBuild queues a build for a job, with optional ordered parameters.
// It returns as soon as the server accepts the queue request and never waits
// for the build itself.
func (f *Facade) TriggerBuild(ctx context.Context, name string, params []jenkins.Parameter) (TriggerResult, error) {
	if err := requirePresent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return TriggerResult{}, err
	}
	queueID, err := f.client.TriggerBuild(ctx, name, params)
	if err != nil {
		return TriggerResult{}, wrap(err, ResourceJob, name)
	}
	return TriggerResult{
		Result:  ok("build triggered for job %s", name),
		QueueID: queueID,
	}, nil
}

// BuildInfo fetches a build snapshot.
func (f *Facade) BuildInfo(ctx context.Context, name string, number int) (*jenkins.Build, error) {
	if err := requirePresent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return nil, err
	}
	b, err := f.client.BuildInfo(ctx, name, number)
	if err != nil {
		return nil, wrap(err, ResourceBuild, buildID(name, number))
	}
	return b, nil
}

// LastBuild fetches the most recent build of a job.
func (f *Facade) LastBuild(ctx context.Context, name string) (*jenkins.Build, error) {
	return f.referencedBuild(ctx, name, func(j *jenkins.Job) *jenkins.BuildRef { return j.LastBuild }, "no builds")
}

// LastSuccessfulBuild fetches the most recent successful build of a job.
func (f *Facade) LastSuccessfulBuild(ctx context.Context, name string) (*jenkins.Build, error) {
	return f.referencedBuild(ctx, name, func(j *jenkins.Job) *jenkins.BuildRef { return j.LastSuccessfulBuild }, "no successful builds")
}

// referencedBuild resolves a build pointer off the job record and reads it.
func (f *Facade) referencedBuild(ctx context.Context, name string, ref func(*jenkins.Job) *jenkins.BuildRef, missing string) (*jenkins.Build, error) {
	job, err := f.client.JobInfo(ctx, name)
	if err != nil {
		return nil, wrap(err, ResourceJob, name)
	}
	r := ref(job)
	if r == nil {
		return nil, &Error{Kind: KindNotFound, Resource: ResourceBuild, ID: name, Err: errors.New("job has " + missing)}
	}
	b, err := f.client.BuildInfo(ctx, name, r.Number)
	if err != nil {
		return nil, wrap(err, ResourceBuild, buildID(name, r.Number))
	}
	return b, nil
}

// ConsoleOutput fetches a build's console text, stripped of ANSI sequences
// and console annotations. Fetched on demand, never cached.
func (f *Facade) ConsoleOutput(ctx context.Context, name string, number int) (string, error) {
	if err := requirePresent(ctx, ResourceJob, name, f.jobExists(name)); err != nil {
		return "", err
	}
	out, err := f.client.ConsoleOutput(ctx, name, number)
	if err != nil {
		return "", wrap(err, ResourceBuild, buildID(name, number))
	}
	return sanitize.Console(out), nil
}

// StopBuild aborts a running build. Stopping a build that already finished
// is reported as informational; no mutating call is issued.
func (f *Facade) StopBuild(ctx context.Context, name string, number int) (Result, error) {
	b, err := f.BuildInfo(ctx, name, number)
	if err != nil {
		return Result{}, err
	}
	if !b.Building {
		return info("build %s is not running", buildID(name, number)), nil
	}
	if err := f.client.StopBuild(ctx, name, number); err != nil {
		return Result{}, wrap(err, ResourceBuild, buildID(name, number))
	}
	return ok("build %s stopped", buildID(name, number)), nil
}

// TestResults fetches a build's aggregated test report. A build without a
// test report yields (nil, nil) so callers can report it informationally
// rather than as a failure.
func (f *Facade) TestResults(ctx context.Context, name string, number int) (*jenkins.TestReport, error) {
	if _, err := f.BuildInfo(ctx, name, number); err != nil {
		return nil, err
	}
	report, err := f.client.TestReport(ctx, name, number)
	if err != nil {
		if errors.Is(err, jenkins.ErrNotFound) {
			return nil, nil
		}
		return nil, wrap(err, ResourceBuild, buildID(name, number))
	}
	return report, nil
}

// HistoryEntry is one build in a cross-job history listing.
type HistoryEntry struct {
	Job       string `json:"job"`
	Number    int    `json:"number"`
	URL       string `json:"url"`
	Result    string `json:"result"`
	Building  bool   `json:"building"`
	Duration  int64  `json:"duration"`
	Timestamp int64  `json:"timestamp"`
}

// BuildHistory lists recent builds for one job, or across all top-level jobs
// when job is empty, newest first, bounded by limit.
func (f *Facade) BuildHistory(ctx context.Context, job string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []HistoryEntry
	if job != "" {
		builds, err := f.client.Builds(ctx, job, limit)
		if err != nil {
			return nil, wrap(err, ResourceJob, job)
		}
		for _, b := range builds {
			entries = append(entries, historyEntry(job, b))
		}
	} else {
		perJob, err := f.client.RecentBuilds(ctx, limit)
		if err != nil {
			return nil, wrap(err, ResourceServer, f.client.BaseURL())
		}
		for _, jb := range perJob {
			for _, b := range jb.Builds {
				entries = append(entries, historyEntry(jb.Name, b))
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func historyEntry(job string, b jenkins.Build) HistoryEntry {
	return HistoryEntry{
		Job:       job,
		Number:    b.Number,
		URL:       b.URL,
		Result:    b.Result,
		Building:  b.Building,
		Duration:  b.Duration,
		Timestamp: b.Timestamp,
	}
}

// buildID renders the "job#number" identifier used in error messages.
func buildID(name string, number int) string {
	return fmt.Sprintf("%s#%d", name, number)
}
