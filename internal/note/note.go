package note

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryMeeting  Category = "meeting"
	CategoryIdea     Category = "idea"
	CategoryProject  Category = "project"
	CategoryPersonal Category = "personal"
	CategoryTodo     Category = "todo"

	// CategoryAll disables category filtering.
	CategoryAll Category = "all"
)

// Valid reports whether c is a category a note can hold. CategoryAll is not.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryMeeting, CategoryIdea, CategoryProject, CategoryPersonal, CategoryTodo:
		return true
	}

	return false
}

func (c Category) Color() string {
	switch c {
	case CategoryMeeting:
		return "#3b82f6"
	case CategoryIdea:
		return "#f59e0b"
	case CategoryProject:
		return "#10b981"
	case CategoryTodo:
		return "#ec4899"
	case CategoryPersonal:
		return "#8b5cf6"
	}

	return "#6b7280"
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "#ef4444"
	case PriorityMedium:
		return "#f59e0b"
	case PriorityLow:
		return "#10b981"
	}

	return "#6b7280"
}

// Note is a piece of team knowledge, optionally tied to a project.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	ProjectID string    `json:"projectId,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsPinned  bool      `json:"isPinned"`
}

type CreateParams struct {
	Title     string
	Content   string
	Category  Category
	Priority  Priority
	ProjectID string
	IsPinned  bool
}

// Update holds the fields to overwrite on a note. Nil fields are kept.
// UpdatedAt is only changed when set here.
type Update struct {
	Title     *string
	Content   *string
	Category  *Category
	Priority  *Priority
	ProjectID *string
	IsPinned  *bool
	UpdatedAt *time.Time
}

// Add appends a note authored by userID at now.
func Add(notes []Note, params CreateParams, userID string, now time.Time) ([]Note, Note) {
	n := Note{
		ID:        uuid.NewString(),
		Title:     params.Title,
		Content:   params.Content,
		Category:  params.Category,
		Priority:  params.Priority,
		ProjectID: params.ProjectID,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
		IsPinned:  params.IsPinned,
	}

	return append(slices.Clone(notes), n), n
}

// UpdateNote merges upd into the note with the given id. The input is
// returned unchanged when no note matches.
func UpdateNote(notes []Note, id string, upd Update) []Note {
	i := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return notes
	}

	n := notes[i]

	if upd.Title != nil {
		n.Title = *upd.Title
	}

	if upd.Content != nil {
		n.Content = *upd.Content
	}

	if upd.Category != nil {
		n.Category = *upd.Category
	}

	if upd.Priority != nil {
		n.Priority = *upd.Priority
	}

	if upd.ProjectID != nil {
		n.ProjectID = *upd.ProjectID
	}

	if upd.IsPinned != nil {
		n.IsPinned = *upd.IsPinned
	}

	if upd.UpdatedAt != nil {
		n.UpdatedAt = *upd.UpdatedAt
	}

	out := slices.Clone(notes)
	out[i] = n

	return out
}

// TogglePin flips the pinned flag of a note without touching UpdatedAt.
func TogglePin(notes []Note, id string) []Note {
	i := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return notes
	}

	return UpdateNote(notes, id, Update{IsPinned: new(!notes[i].IsPinned)})
}

func Delete(notes []Note, id string) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}

	return out
}

func Find(notes []Note, id string) (Note, bool) {
	i := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return Note{}, false
	}

	return notes[i], true
}

// Filter keeps the notes of category whose title or content contains query,
// ignoring case. CategoryAll and an empty category skip the category check.
func Filter(notes []Note, query string, category Category) []Note {
	q := strings.ToLower(query)

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if category != CategoryAll && category != "" && n.Category != category {
			continue
		}

		if q == "" ||
			strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}

	return out
}

// Sort puts pinned notes first, each group ordered by most recent update.
// Ties keep their original order.
func Sort(notes []Note) []Note {
	out := slices.Clone(notes)

	slices.SortStableFunc(out, func(a, b Note) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}

			return 1
		}

		return cmp.Compare(b.UpdatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	})

	return out
}
