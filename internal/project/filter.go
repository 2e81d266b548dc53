package project

import (
	"cmp"
	"slices"
	"strings"
)

// Filter returns the projects whose title, client name or location contains
// query, ignoring case. An empty query matches every project.
func Filter(projects []Project, query string) []Project {
	q := strings.ToLower(query)

	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.ClientName), q) ||
			strings.Contains(strings.ToLower(p.Location), q) {
			out = append(out, p)
		}
	}

	return out
}

// SortSubmissionsByDate orders submissions most recently submitted first.
// A submission without a submitted date sorts as if dated at the Unix epoch.
func SortSubmissionsByDate(subs []Submission) []Submission {
	out := slices.Clone(subs)

	slices.SortStableFunc(out, func(a, b Submission) int {
		return cmp.Compare(submittedMillis(b), submittedMillis(a))
	})

	return out
}

func submittedMillis(s Submission) int64 {
	if s.SubmittedDate == nil {
		return 0
	}

	return s.SubmittedDate.UnixMilli()
}

// TimelineEntry is a submission annotated with the project it belongs to.
type TimelineEntry struct {
	Submission
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	ProjectColor string `json:"projectColor"`
}

// Timeline flattens the submissions of all projects, most recent first.
func Timeline(projects []Project) []TimelineEntry {
	var out []TimelineEntry

	for _, p := range projects {
		for _, s := range p.Submissions {
			out = append(out, TimelineEntry{
				Submission:   s,
				ProjectID:    p.ID,
				ProjectTitle: p.Title,
				ProjectColor: p.Color,
			})
		}
	}

	slices.SortStableFunc(out, func(a, b TimelineEntry) int {
		return cmp.Compare(submittedMillis(b.Submission), submittedMillis(a.Submission))
	})

	return out
}
