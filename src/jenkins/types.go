package jenkins

import "strings"

// Build result values as reported by the Jenkins API. An empty result with
// Building set means the build has not finished yet.
const (
	ResultSuccess  = "SUCCESS"
	ResultFailure  = "FAILURE"
	ResultUnstable = "UNSTABLE"
	ResultAborted  = "ABORTED"
)

// JobSummary is the compact job record returned by list endpoints.
type JobSummary struct {
	Class    string `json:"_class,omitempty"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Color    string `json:"color,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// IsFolder reports whether the item is a folder rather than a buildable job.
func (j JobSummary) IsFolder() bool {
	return strings.Contains(strings.ToLower(j.Class), "folder")
}

// BuildRef is a lightweight pointer to a build (number + URL).
type BuildRef struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Job is the full job record. For folders, Jobs holds the children.
type Job struct {
	Class               string       `json:"_class,omitempty"`
	Name                string       `json:"name"`
	FullName            string       `json:"fullName,omitempty"`
	URL                 string       `json:"url"`
	Description         string       `json:"description,omitempty"`
	Buildable           bool         `json:"buildable"`
	Disabled            bool         `json:"disabled"`
	InQueue             bool         `json:"inQueue"`
	ConcurrentBuild     bool         `json:"concurrentBuild"`
	NextBuildNumber     int          `json:"nextBuildNumber"`
	Color               string       `json:"color,omitempty"`
	LastBuild           *BuildRef    `json:"lastBuild"`
	LastSuccessfulBuild *BuildRef    `json:"lastSuccessfulBuild"`
	LastFailedBuild     *BuildRef    `json:"lastFailedBuild"`
	Jobs                []JobSummary `json:"jobs,omitempty"`
}

// Parameter is a name/value pair bound to a build at trigger time.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cause describes why a build was triggered.
type Cause struct {
	ShortDescription string `json:"shortDescription"`
	UserID           string `json:"userId,omitempty"`
	UserName         string `json:"userName,omitempty"`
}

// Action is a polymorphic entry in a build's actions list. Only the fields
// the agent cares about are decoded.
type Action struct {
	Class      string      `json:"_class,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Causes     []Cause     `json:"causes,omitempty"`
}

// Build is a completed or in-flight build snapshot.
type Build struct {
	Number            int      `json:"number"`
	URL               string   `json:"url"`
	DisplayName       string   `json:"displayName,omitempty"`
	Result            string   `json:"result"`
	Building          bool     `json:"building"`
	Duration          int64    `json:"duration"`
	EstimatedDuration int64    `json:"estimatedDuration"`
	Timestamp         int64    `json:"timestamp"`
	Actions           []Action `json:"actions,omitempty"`
}

// Parameters collects the trigger-time parameters from the build's actions,
// in the order Jenkins reports them.
func (b *Build) Parameters() []Parameter {
	var out []Parameter
	for _, a := range b.Actions {
		out = append(out, a.Parameters...)
	}
	return out
}

// QueueTask identifies the job a queue item belongs to.
type QueueTask struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

// QueueItem is a pending build request that has not yet become a build.
// Once Jenkins converts it, Executable points at the resulting build and the
// item eventually stops being resolvable by id.
type QueueItem struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Why          string    `json:"why,omitempty"`
	Blocked      bool      `json:"blocked"`
	Buildable    bool      `json:"buildable"`
	Stuck        bool      `json:"stuck"`
	Cancelled    bool      `json:"cancelled"`
	InQueueSince int64     `json:"inQueueSince"`
	Task         QueueTask `json:"task"`
	Executable   *BuildRef `json:"executable,omitempty"`
}

// Queue is the server-wide build queue.
type Queue struct {
	Items []QueueItem `json:"items"`
}

// Label is a node label.
type Label struct {
	Name string `json:"name"`
}

// Computer is a Jenkins node (agent) as reported by the computer API.
type Computer struct {
	DisplayName        string  `json:"displayName"`
	Description        string  `json:"description,omitempty"`
	NumExecutors       int     `json:"numExecutors"`
	Offline            bool    `json:"offline"`
	TemporarilyOffline bool    `json:"temporarilyOffline"`
	Idle               bool    `json:"idle"`
	OfflineCauseReason string  `json:"offlineCauseReason,omitempty"`
	AssignedLabels     []Label `json:"assignedLabels,omitempty"`
}

/// ComputerSet is the computer API root: all nodes plus executor totals.
type ComputerSet struct {
	BusyExecutors  int        `json:"busyExecutors"`
	TotalExecutors int        `json:"totalExecutors"`
	Computers      []Computer `json:"computer"`
}

// View is a Jenkins view with its member jobs.
type View struct {
	Class       string       `json:"_class,omitempty"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Description string       `json:"description,omitempty"`
	Jobs        []JobSummary `json:"jobs,omitempty"`
}

// Plugin is an installed plugin. Read-only from the agent's perspective.
type Plugin struct {
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
	Version   string `json:"version"`
	Active    bool   `json:"active"`
	Enabled   bool   `json:"enabled"`
	HasUpdate bool   `json:"hasUpdate"`
}

// Credential is credential metadata. Secret values are write-only and never
// appear here.
type Credential struct {
	ID          string `json:"id"`
	TypeName    string `json:"typeName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
}

// CredentialDomain is a credential domain within the system store.
type CredentialDomain struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TestCase is a single test result within a suite.
type TestCase struct {
	ClassName    string  `json:"className"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Duration     float64 `json:"duration"`
	ErrorDetails string  `json:"errorDetails,omitempty"`
}

// TestSuite groups test cases.
type TestSuite struct {
	Name     string     `json:"name"`
	Duration float64    `json:"duration"`
	Cases    []TestCase `json:"cases,omitempty"`
}

// TestReport is the aggregated test result for a build.
type TestReport struct {
	FailCount  int         `json:"failCount"`
	PassCount  int         `json:"passCount"`
	SkipCount  int         `json:"skipCount"`
	TotalCount int         `json:"totalCount,omitempty"`
	Duration   float64     `json:"duration"`
	Suites     []TestSuite `json:"suites,omitempty"`
}

// Total returns the total number of test cases, computing it from the
// per-status counts when the server omits totalCount.
func (r *TestReport) Total() int {
	if r.TotalCount > 0 {
		return r.TotalCount
	}
	return r.FailCount + r.PassCount + r.SkipCount
}
