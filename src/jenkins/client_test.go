package jenkins

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJobPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "top level", in: "myjob", want: "job/myjob"},
		{name: "nested", in: "folder/sub/job1", want: "job/folder/job/sub/job/job1"},
		{name: "leading and trailing slashes", in: "/folder/job1/", want: "job/folder/job/job1"},
		{name: "escaped segment", in: "a b/c", want: "job/a%20b/job/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jobPath(tt.in); got != tt.want {
				t.Errorf("jobPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitQualifiedName(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantFolder string
		wantLeaf   string
	}{
		{name: "top level", in: "myjob", wantFolder: "", wantLeaf: "myjob"},
		{name: "one folder", in: "team/build", wantFolder: "team", wantLeaf: "build"},
		{name: "nested folders", in: "a/b/c", wantFolder: "a/b", wantLeaf: "c"},
		{name: "trailing slash", in: "team/build/", wantFolder: "team", wantLeaf: "build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, leaf := SplitQualifiedName(tt.in)
			if folder != tt.wantFolder || leaf != tt.wantLeaf {
				t.Errorf("SplitQualifiedName(%q) = (%q, %q), want (%q, %q)",
					tt.in, folder, leaf, tt.wantFolder, tt.wantLeaf)
			}
		})
	}
}

func TestNodePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "master", want: "(master)"},
		{in: "(master)", want: "(master)"},
		{in: "built-in", want: "(built-in)"},
		{in: "(built-in)", want: "(built-in)"},
		{in: "agent-1", want: "agent-1"},
	}

	for _, tt := range tests {
		if got := nodePath(tt.in); got != tt.want {
			t.Errorf("nodePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "404 is not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "401 is unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "403 is unauthorized", status: http.StatusForbidden, want: ErrUnauthorized},
		{name: "500 is unavailable", status: http.StatusInternalServerError, want: ErrUnavailable},
		{name: "503 is unavailable", status: http.StatusServiceUnavailable, want: ErrUnavailable},
		{name: "400 is invalid request", status: http.StatusBadRequest, want: ErrInvalidRequest},
		{name: "409 is invalid request", status: http.StatusConflict, want: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "user", "token")
			_, err := c.JobInfo(context.Background(), "myjob")
			if err == nil {
				t.Fatal("JobInfo() expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("JobInfo() error = %v, want sentinel %v", err, tt.want)
			}
		})
	}
}

func TestVersionFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Jenkins", "2.426.3")
		w.Write([]byte(`{"url":"http://example/"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user", "token")
	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v != "2.426.3" {
		t.Errorf("Version() = %q, want %q", v, "2.426.3")
	}
}

func TestVersionMissingHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user", "token")
	if _, err := c.Version(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Version() error = %v, want sentinel %v", err, ErrUnavailable)
	}
}

func TestBasicAuthSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"name":"myjob"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "secret")
	if _, err := c.JobInfo(context.Background(), "myjob"); err != nil {
		t.Fatalf("JobInfo() error = %v", err)
	}
}

func TestTriggerBuild(t *testing.T) {
	tests := []struct {
		name       string
		params     []Parameter
		wantPath   string
		location   string
		wantQueue  int64
		wantMethod string
	}{
		{
			name:      "no parameters",
			params:    nil,
			wantPath:  "/job/myjob/build",
			location:  "http://example/queue/item/42/",
			wantQueue: 42,
		},
		{
			name:      "with parameters",
			params:    []Parameter{{Name: "BRANCH", Value: "main"}},
			wantPath:  "/job/myjob/buildWithParameters",
			location:  "http://example/queue/item/7/",
			wantQueue: 7,
		},
		{
			name:      "missing location",
			params:    nil,
			wantPath:  "/job/myjob/build",
			location:  "",
			wantQueue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotBranch string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				r.ParseForm()
				gotBranch = r.PostFormValue("BRANCH")
				if tt.location != "" {
					w.Header().Set("Location", tt.location)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "user", "token")
			id, err := c.TriggerBuild(context.Background(), "myjob", tt.params)
			if err != nil {
				t.Fatalf("TriggerBuild() error = %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("TriggerBuild() path = %q, want %q", gotPath, tt.wantPath)
			}
			if id != tt.wantQueue {
				t.Errorf("TriggerBuild() queue id = %d, want %d", id, tt.wantQueue)
			}
			if len(tt.params) > 0 && gotBranch != "main" {
				t.Errorf("TriggerBuild() BRANCH = %q, want %q", gotBranch, "main")
			}
		})
	}
}

func TestPostFormAcceptsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Jenkins answers most posts with a 302 back to the UI.
		w.Header().Set("Location", "/")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user", "token")
	if err := c.DeleteJob(context.Background(), "myjob"); err != nil {
		t.Errorf("DeleteJob() error = %v, want nil on 302", err)
	}
}

func TestCopyItemRejectsCrossFolder(t *testing.T) {
	c := NewClient("http://example", "user", "token")
	err := c.CopyItem(context.Background(), "folderA/job1", "folderB/job2")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("CopyItem() error = %v, want sentinel %v", err, ErrInvalidRequest)
	}
}

func TestRenameJobRejectsCrossFolder(t *testing.T) {
	c := NewClient("http://example", "user", "token")
	err := c.RenameJob(context.Background(), "folderA/job1", "folderB/job1")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("RenameJob() error = %v, want sentinel %v", err, ErrInvalidRequest)
	}
}

func TestCreateItemInFolder(t *testing.T) {
	var gotPath, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user", "token")
	if err := c.CreateItem(context.Background(), "team/newjob", []byte("<project/>")); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if gotPath != "/job/team/createItem" {
		t.Errorf("CreateItem() path = %q, want %q", gotPath, "/job/team/createItem")
	}
	if gotName != "newjob" {
		t.Errorf("CreateItem() name = %q, want %q", gotName, "newjob")
	}
}

func TestCredentialDomains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"domains":{"_":{"description":"global"},"prod":{"description":"prod secrets"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user", "token")
	domains, err := c.CredentialDomains(context.Background())
	if err != nil {
		t.Fatalf("CredentialDomains() error = %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("CredentialDomains() returned %d domains, want 2", len(domains))
	}
	names := map[string]bool{}
	for _, d := range domains {
		names[d.Name] = true
	}
	if !names["_"] || !names["prod"] {
		t.Errorf("CredentialDomains() names = %v, want _ and prod", names)
	}
}

func TestRestartPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user", "token")

	if err := c.Restart(context.Background(), true); err != nil {
		t.Fatalf("Restart(safe) error = %v", err)
	}
	if gotPath != "/safeRestart" {
		t.Errorf("Restart(safe) path = %q, want /safeRestart", gotPath)
	}

	if err := c.Restart(context.Background(), false); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if gotPath != "/restart" {
		t.Errorf("Restart() path = %q, want /restart", gotPath)
	}
}
