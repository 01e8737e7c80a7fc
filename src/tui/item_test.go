package tui

import (
	"testing"

	"jenkins-agent/src/jenkins"
)

func TestItemStatus(t *testing.T) {
	tests := []struct {
		name string
		job  jenkins.JobSummary
		want string
	}{
		{name: "success", job: jenkins.JobSummary{Name: "a", Color: "blue"}, want: "success"},
		{name: "failed", job: jenkins.JobSummary{Name: "a", Color: "red"}, want: "failed"},
		{name: "unstable", job: jenkins.JobSummary{Name: "a", Color: "yellow"}, want: "unstable"},
		{name: "building", job: jenkins.JobSummary{Name: "a", Color: "blue_anime"}, want: "success (building)"},
		{name: "disabled", job: jenkins.JobSummary{Name: "a", Color: "disabled"}, want: "disabled"},
		{name: "never built", job: jenkins.JobSummary{Name: "a", Color: "notbuilt"}, want: "not built"},
		{name: "no color", job: jenkins.JobSummary{Name: "a"}, want: "not built"},
		{
			name: "folder",
			job:  jenkins.JobSummary{Name: "team", Class: "com.cloudbees.hudson.plugins.folder.Folder"},
			want: "folder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Job: tt.job}
			if got := item.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemTitlePrefersFullName(t *testing.T) {
	item := Item{Job: jenkins.JobSummary{Name: "build", FullName: "team/build"}}
	if item.Title() != "team/build" {
		t.Errorf("Title() = %q, want qualified name", item.Title())
	}

	item = Item{Job: jenkins.JobSummary{Name: "build"}}
	if item.Title() != "build" {
		t.Errorf("Title() = %q, want leaf name", item.Title())
	}
}
