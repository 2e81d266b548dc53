package document

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePDF   Type = "pdf"
	TypeExcel Type = "excel"
	TypeImage Type = "image"
	TypeWord  Type = "word"
	TypeCAD   Type = "cad"
	TypeOther Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypePDF, TypeExcel, TypeImage, TypeWord, TypeCAD, TypeOther:
		return true
	}

	return false
}

// Document is the metadata of a file attached to a project. Size is a
// display string such as "15.4 MB".
type Document struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Size       string    `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
	URL        string    `json:"url,omitempty"`
}

type CreateParams struct {
	ProjectID string
	Name      string
	Type      Type
	Size      string
	URL       string
}

func Add(docs []Document, params CreateParams, userID string, now time.Time) ([]Document, Document) {
	d := Document{
		ID:         uuid.NewString(),
		ProjectID:  params.ProjectID,
		Name:       params.Name,
		Type:       params.Type,
		Size:       params.Size,
		UploadedBy: userID,
		UploadedAt: now,
		URL:        params.URL,
	}

	if d.Type == "" {
		d.Type = TypeOther
	}

	return append(slices.Clone(docs), d), d
}

func Delete(docs []Document, id string) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if d.ID != id {
			out = append(out, d)
		}
	}

	return out
}

func ForProject(docs []Document, projectID string) []Document {
	out := make([]Document, 0)
	for _, d := range docs {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}

	return out
}
