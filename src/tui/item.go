package tui

import (
	"strings"

	"jenkins-agent/src/jenkins"
)

// Item wraps a job summary for display in the dashboard list. It implements
// bubbles/list.Item.
type Item struct {
	Job jenkins.JobSummary
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.displayName() }

// Title returns the primary text for the item.
func (i Item) Title() string { return i.displayName() }

// Description returns the secondary text for the item.
func (i Item) Description() string { return i.Status() }

func (i Item) displayName() string {
	if i.Job.FullName != "" {
		return i.Job.FullName
	}
	return i.Job.Name
}

// Status maps the job's ball color onto a human-readable state.
func (i Item) Status() string {
	if i.Job.IsFolder() {
		return "folder"
	}

	color := i.Job.Color
	building := strings.HasSuffix(color, "_anime")
	color = strings.TrimSuffix(color, "_anime")

	var status string
	switch color {
	case "blue":
		status = "success"
	case "red":
		status = "failed"
	case "yellow":
		status = "unstable"
	case "aborted":
		status = "aborted"
	case "disabled":
		status = "disabled"
	case "notbuilt", "":
		status = "not built"
	default:
		status = color
	}

	if building {
		status += " (building)"
	}
	return status
}
