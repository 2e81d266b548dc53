package document_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/document"
)

func TestDocuments(t *testing.T) {
	now := time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)

	docs := []document.Document{
		{ID: "d1", ProjectID: "1", Name: "Concept Design Presentation.pdf", Type: document.TypePDF},
		{ID: "d4", ProjectID: "2", Name: "Mood Board.jpg", Type: document.TypeImage},
	}

	got, created := document.Add(docs, document.CreateParams{ProjectID: "1", Name: "Layout.dwg"}, "2", now)
	require.Len(t, got, 3)
	assert.Equal(t, document.TypeOther, created.Type)
	assert.Equal(t, "2", created.UploadedBy)
	assert.Equal(t, now, created.UploadedAt)

	forOne := document.ForProject(got, "1")
	assert.Len(t, forOne, 2)
	assert.Empty(t, document.ForProject(got, "9"))

	left := document.Delete(got, "d1")
	assert.Len(t, left, 2)
	assert.Len(t, got, 3)
}

func TestType_Valid(t *testing.T) {
	assert.True(t, document.TypeCAD.Valid())
	assert.False(t, document.Type("zip").Valid())
}
