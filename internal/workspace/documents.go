package workspace

import (
	"context"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
)

func (s *Service) Documents(projectID string) []document.Document {
	var out []document.Document

	s.read(func(st State) { out = document.ForProject(st.Documents, projectID) })

	return out
}

func (s *Service) GetDocument(id string) (document.Document, error) {
	var (
		d  document.Document
		ok bool
	)

	s.read(func(st State) {
		i := slices.IndexFunc(st.Documents, func(doc document.Document) bool { return doc.ID == id })
		if i >= 0 {
			d, ok = st.Documents[i], true
		}
	})

	if !ok {
		return document.Document{}, ErrNotFound
	}

	return d, nil
}

func (s *Service) AddDocument(ctx context.Context, params document.CreateParams, userID string) (document.Document, error) {
	var created document.Document

	err := s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		if _, ok := project.Find(next.Projects, params.ProjectID); !ok {
			return nil, ErrNotFound
		}

		next.Documents, created = document.Add(next.Documents, params, userID, now)

		return []Collection{CollectionDocuments}, nil
	})
	if err != nil {
		return document.Document{}, err
	}

	return created, nil
}

func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	return s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if !slices.ContainsFunc(next.Documents, func(d document.Document) bool { return d.ID == id }) {
			return nil, ErrNotFound
		}

		next.Documents = document.Delete(next.Documents, id)

		return []Collection{CollectionDocuments}, nil
	})
}
