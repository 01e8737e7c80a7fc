package facade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

// fakeJenkins is a minimal Jenkins stand-in that counts every request, so
// tests can assert which calls an operation did and did not make.
type fakeJenkins struct {
	mu    sync.Mutex
	mux   *http.ServeMux
	calls map[string]int
	srv   *httptest.Server
}

func newFakeJenkins(t *testing.T) *fakeJenkins {
	t.Helper()
	f := &fakeJenkins{
		mux:   http.NewServeMux(),
		calls: make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method+" "+r.URL.Path]++
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeJenkins) handle(path string, h http.HandlerFunc) {
	f.mux.HandleFunc(path, h)
}

// handleJSON registers a path that always answers with a fixed JSON body.
func (f *fakeJenkins) handleJSON(path, body string) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func (f *fakeJenkins) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *fakeJenkins) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeJenkins) facade() *Facade {
	return New(jenkins.NewClient(f.srv.URL, "user", "token"))
}

func TestCreateJobAlreadyExists(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)

	_, err := fake.facade().CreateJob(context.Background(), "myjob", "<project/>")
	if err == nil {
		t.Fatal("CreateJob() expected error for existing job")
	}
	if KindOf(err) != KindAlreadyExists {
		t.Errorf("CreateJob() kind = %v, want %v", KindOf(err), KindAlreadyExists)
	}
	if n := fake.count("POST", "/createItem"); n != 0 {
		t.Errorf("CreateJob() issued %d create calls, want 0", n)
	}
}

func TestCreateJobSuccess(t *testing.T) {
	fake := newFakeJenkins(t)
	// Probe path unregistered: the mux answers 404, reading as absent.
	fake.handle("/createItem", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	res, err := fake.facade().CreateJob(context.Background(), "myjob", "<project/>")
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}
	if res.Status != StatusSuccess {
		t.Errorf("CreateJob() status = %q, want %q", res.Status, StatusSuccess)
	}
	if n := fake.count("POST", "/createItem"); n != 1 {
		t.Errorf("CreateJob() issued %d create calls, want 1", n)
	}
}

func TestDeleteJobNotFound(t *testing.T) {
	fake := newFakeJenkins(t)

	_, err := fake.facade().DeleteJob(context.Background(), "missing")
	if KindOf(err) != KindNotFound {
		t.Fatalf("DeleteJob() kind = %v, want %v", KindOf(err), KindNotFound)
	}
	if n := fake.count("POST", "/job/missing/doDelete"); n != 0 {
		t.Errorf("DeleteJob() issued %d delete calls, want 0", n)
	}
}

func TestAmbiguousProbeAborts(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handle("/job/myjob/api/json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := fake.facade().CreateJob(context.Background(), "myjob", "<project/>")
	if KindOf(err) != KindRemoteUnavailable {
		t.Fatalf("CreateJob() kind = %v, want %v", KindOf(err), KindRemoteUnavailable)
	}
	if n := fake.count("POST", "/createItem"); n != 0 {
		t.Errorf("CreateJob() issued %d create calls after ambiguous probe, want 0", n)
	}
}

func TestEnableJobIdempotent(t *testing.T) {
	tests := []struct {
		name       string
		disabled   bool
		wantStatus string
		wantCalls  int
	}{
		{name: "already enabled", disabled: false, wantStatus: StatusInfo, wantCalls: 0},
		{name: "currently disabled", disabled: true, wantStatus: StatusSuccess, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeJenkins(t)
			body := `{"name":"myjob","disabled":false}`
			if tt.disabled {
				body = `{"name":"myjob","disabled":true}`
			}
			fake.handleJSON("/job/myjob/api/json", body)
			fake.handle("/job/myjob/enable", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			res, err := fake.facade().EnableJob(context.Background(), "myjob")
			if err != nil {
				t.Fatalf("EnableJob() error = %v", err)
			}
			if res.Status != tt.wantStatus {
				t.Errorf("EnableJob() status = %q, want %q", res.Status, tt.wantStatus)
			}
			if n := fake.count("POST", "/job/myjob/enable"); n != tt.wantCalls {
				t.Errorf("EnableJob() issued %d enable calls, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestDisableJobIdempotent(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob","disabled":true}`)

	res, err := fake.facade().DisableJob(context.Background(), "myjob")
	if err != nil {
		t.Fatalf("DisableJob() error = %v", err)
	}
	if res.Status != StatusInfo {
		t.Errorf("DisableJob() status = %q, want %q", res.Status, StatusInfo)
	}
	if n := fake.count("POST", "/job/myjob/disable"); n != 0 {
		t.Errorf("DisableJob() issued %d disable calls, want 0", n)
	}
}

func TestCopyJobChecksSourceFirst(t *testing.T) {
	fake := newFakeJenkins(t)
	// Neither source nor target exists; a missing source must be the error
	// and the target must never be probed.
	_, err := fake.facade().CopyJob(context.Background(), "src", "dst")
	if KindOf(err) != KindNotFound {
		t.Fatalf("CopyJob() kind = %v, want %v", KindOf(err), KindNotFound)
	}
	if n := fake.count("GET", "/job/dst/api/json"); n != 0 {
		t.Errorf("CopyJob() probed target %d times before source check failed, want 0", n)
	}
}

func TestCopyJobTargetTaken(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/src/api/json", `{"name":"src"}`)
	fake.handleJSON("/job/dst/api/json", `{"name":"dst"}`)

	_, err := fake.facade().CopyJob(context.Background(), "src", "dst")
	if KindOf(err) != KindAlreadyExists {
		t.Fatalf("CopyJob() kind = %v, want %v", KindOf(err), KindAlreadyExists)
	}
	if n := fake.count("POST", "/createItem"); n != 0 {
		t.Errorf("CopyJob() issued %d copy calls, want 0", n)
	}
}

func TestStopBuildNotRunning(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)
	fake.handleJSON("/job/myjob/5/api/json", `{"number":5,"building":false,"result":"SUCCESS"}`)

	res, err := fake.facade().StopBuild(context.Background(), "myjob", 5)
	if err != nil {
		t.Fatalf("StopBuild() error = %v", err)
	}
	if res.Status != StatusInfo {
		t.Errorf("StopBuild() status = %q, want %q", res.Status, StatusInfo)
	}
	if n := fake.count("POST", "/job/myjob/5/stop"); n != 0 {
		t.Errorf("StopBuild() issued %d stop calls, want 0", n)
	}
}

func TestStopBuildRunning(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)
	fake.handleJSON("/job/myjob/5/api/json", `{"number":5,"building":true}`)
	fake.handle("/job/myjob/5/stop", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	res, err := fake.facade().StopBuild(context.Background(), "myjob", 5)
	if err != nil {
		t.Fatalf("StopBuild() error = %v", err)
	}
	if res.Status != StatusSuccess {
		t.Errorf("StopBuild() status = %q, want %q", res.Status, StatusSuccess)
	}
	if n := fake.count("POST", "/job/myjob/5/stop"); n != 1 {
		t.Errorf("StopBuild() issued %d stop calls, want 1", n)
	}
}

func TestTestResultsMissingReport(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)
	fake.handleJSON("/job/myjob/5/api/json", `{"number":5,"building":false}`)
	// testReport path unregistered: 404 means no report was published.

	report, err := fake.facade().TestResults(context.Background(), "myjob", 5)
	if err != nil {
		t.Fatalf("TestResults() error = %v", err)
	}
	if report != nil {
		t.Errorf("TestResults() = %+v, want nil for missing report", report)
	}
}

func TestTriggerBuildReturnsQueueID(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)
	fake.handle("/job/myjob/build", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", fake.srv.URL+"/queue/item/99/")
		w.WriteHeader(http.StatusCreated)
	})

	res, err := fake.facade().TriggerBuild(context.Background(), "myjob", nil)
	if err != nil {
		t.Fatalf("TriggerBuild() error = %v", err)
	}
	if res.QueueID != 99 {
		t.Errorf("TriggerBuild() queue id = %d, want 99", res.QueueID)
	}
	if res.Status != StatusSuccess {
		t.Errorf("TriggerBuild() status = %q, want %q", res.Status, StatusSuccess)
	}
}

func TestTriggerBuildMissingJob(t *testing.T) {
	fake := newFakeJenkins(t)

	_, err := fake.facade().TriggerBuild(context.Background(), "missing", nil)
	if KindOf(err) != KindNotFound {
		t.Fatalf("TriggerBuild() kind = %v, want %v", KindOf(err), KindNotFound)
	}
	if n := fake.count("POST", "/job/missing/build"); n != 0 {
		t.Errorf("TriggerBuild() issued %d trigger calls, want 0", n)
	}
}

func TestEnableNodeIdempotent(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/computer/agent-1/api/json", `{"displayName":"agent-1","offline":false}`)

	res, err := fake.facade().EnableNode(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("EnableNode() error = %v", err)
	}
	if res.Status != StatusInfo {
		t.Errorf("EnableNode() status = %q, want %q", res.Status, StatusInfo)
	}
	if n := fake.count("POST", "/computer/agent-1/toggleOffline"); n != 0 {
		t.Errorf("EnableNode() issued %d toggle calls, want 0", n)
	}
}

func TestDisableNodeTogglesOnce(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/computer/agent-1/api/json", `{"displayName":"agent-1","offline":false}`)
	fake.handle("/computer/agent-1/toggleOffline", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	res, err := fake.facade().DisableNode(context.Background(), "agent-1", "maintenance")
	if err != nil {
		t.Fatalf("DisableNode() error = %v", err)
	}
	if res.Status != StatusSuccess {
		t.Errorf("DisableNode() status = %q, want %q", res.Status, StatusSuccess)
	}
	if n := fake.count("POST", "/computer/agent-1/toggleOffline"); n != 1 {
		t.Errorf("DisableNode() issued %d toggle calls, want 1", n)
	}
}

func TestCancelQueueItemMissing(t *testing.T) {
	fake := newFakeJenkins(t)

	_, err := fake.facade().CancelQueueItem(context.Background(), 42)
	if KindOf(err) != KindNotFound {
		t.Fatalf("CancelQueueItem() kind = %v, want %v", KindOf(err), KindNotFound)
	}
	if n := fake.count("POST", "/queue/cancelItem"); n != 0 {
		t.Errorf("CancelQueueItem() issued %d cancel calls, want 0", n)
	}
}

func TestCreateViewUnsupportedType(t *testing.T) {
	fake := newFakeJenkins(t)

	_, err := fake.facade().CreateView(context.Background(), "dashboard", "pie-chart")
	if KindOf(err) != KindUnsupportedKind {
		t.Fatalf("CreateView() kind = %v, want %v", KindOf(err), KindUnsupportedKind)
	}
	if n := fake.total(); n != 0 {
		t.Errorf("CreateView() issued %d calls for unsupported type, want 0", n)
	}
}

func TestCreateCredentialUnsupportedKind(t *testing.T) {
	fake := newFakeJenkins(t)

	spec := payload.CredentialSpec{Kind: "certificate", ID: "cred-1"}
	_, err := fake.facade().CreateCredential(context.Background(), "", spec)
	if KindOf(err) != KindUnsupportedKind {
		t.Fatalf("CreateCredential() kind = %v, want %v", KindOf(err), KindUnsupportedKind)
	}
	if n := fake.total(); n != 0 {
		t.Errorf("CreateCredential() issued %d calls for unsupported kind, want 0", n)
	}
}

func TestCreateNodeUnsupportedLauncher(t *testing.T) {
	fake := newFakeJenkins(t)

	spec := payload.NodeSpec{Name: "agent-2", RemoteFS: "/var/jenkins", Launcher: "docker"}
	_, err := fake.facade().CreateNode(context.Background(), spec)
	if KindOf(err) != KindUnsupportedKind {
		t.Fatalf("CreateNode() kind = %v, want %v", KindOf(err), KindUnsupportedKind)
	}
	if n := fake.total(); n != 0 {
		t.Errorf("CreateNode() issued %d calls for unsupported launcher, want 0", n)
	}
}

func TestSearchJobsDescendsFolders(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/api/json", `{"jobs":[
		{"_class":"com.cloudbees.hudson.plugins.folder.Folder","name":"team","url":"u"},
		{"name":"deploy-prod","url":"u"},
		{"name":"unrelated","url":"u"}
	]}`)
	fake.handleJSON("/job/team/api/json", `{"jobs":[
		{"name":"deploy-staging","url":"u"}
	]}`)

	jobs, err := fake.facade().SearchJobs(context.Background(), "deploy")
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("SearchJobs() returned %d jobs, want 2: %+v", len(jobs), jobs)
	}
	names := map[string]bool{}
	for _, j := range jobs {
		name := j.FullName
		if name == "" {
			name = j.Name
		}
		names[name] = true
	}
	if !names["deploy-prod"] || !names["team/deploy-staging"] {
		t.Errorf("SearchJobs() names = %v, want deploy-prod and team/deploy-staging", names)
	}
}

func TestSearchJobsSkipsBrokenFolder(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/api/json", `{"jobs":[
		{"_class":"com.cloudbees.hudson.plugins.folder.Folder","name":"broken","url":"u"},
		{"name":"deploy-prod","url":"u"}
	]}`)
	fake.handle("/job/broken/api/json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	jobs, err := fake.facade().SearchJobs(context.Background(), "deploy")
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if len(jobs) != 1 || jobs[0].Name != "deploy-prod" {
		t.Errorf("SearchJobs() = %+v, want only deploy-prod", jobs)
	}
}

func TestLastBuildNoBuilds(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)

	_, err := fake.facade().LastBuild(context.Background(), "myjob")
	if KindOf(err) != KindNotFound {
		t.Errorf("LastBuild() kind = %v, want %v", KindOf(err), KindNotFound)
	}
}

func TestConsoleOutputSanitized(t *testing.T) {
	fake := newFakeJenkins(t)
	fake.handleJSON("/job/myjob/api/json", `{"name":"myjob"}`)
	fake.handle("/job/myjob/5/consoleText", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("line one\x1b[31m red \x1b[0mdone\n"))
	})

	out, err := fake.facade().ConsoleOutput(context.Background(), "myjob", 5)
	if err != nil {
		t.Fatalf("ConsoleOutput() error = %v", err)
	}
	want := "line one red done\n"
	if out != want {
		t.Errorf("ConsoleOutput() = %q, want %q", out, want)
	}
}
