package workspace

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/note"
)

// Notes returns the notes matching query and category, pinned first and
// then most recently updated.
func (s *Service) Notes(query string, category note.Category) []note.Note {
	var out []note.Note

	s.read(func(st State) { out = note.Sort(note.Filter(st.Notes, query, category)) })

	return out
}

func (s *Service) GetNote(id string) (note.Note, error) {
	var (
		n  note.Note
		ok bool
	)

	s.read(func(st State) { n, ok = note.Find(st.Notes, id) })

	if !ok {
		return note.Note{}, ErrNotFound
	}

	return n, nil
}

func (s *Service) CreateNote(ctx context.Context, params note.CreateParams, userID string) (note.Note, error) {
	var created note.Note

	err := s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		next.Notes, created = note.Add(next.Notes, params, userID, now)
		return []Collection{CollectionNotes}, nil
	})
	if err != nil {
		return note.Note{}, err
	}

	return created, nil
}

// EditNote applies an edit made by a user. Unless upd carries its own
// UpdatedAt the note is stamped with the current time.
func (s *Service) EditNote(ctx context.Context, id string, upd note.Update) (note.Note, error) {
	var updated note.Note

	err := s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		if _, ok := note.Find(next.Notes, id); !ok {
			return nil, ErrNotFound
		}

		if upd.UpdatedAt == nil {
			upd.UpdatedAt = &now
		}

		next.Notes = note.UpdateNote(next.Notes, id, upd)
		updated, _ = note.Find(next.Notes, id)

		return []Collection{CollectionNotes}, nil
	})
	if err != nil {
		return note.Note{}, err
	}

	return updated, nil
}

func (s *Service) TogglePin(ctx context.Context, id string) (note.Note, error) {
	var updated note.Note

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := note.Find(next.Notes, id); !ok {
			return nil, ErrNotFound
		}

		next.Notes = note.TogglePin(next.Notes, id)
		updated, _ = note.Find(next.Notes, id)

		return []Collection{CollectionNotes}, nil
	})
	if err != nil {
		return note.Note{}, err
	}

	return updated, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := note.Find(next.Notes, id); !ok {
			return nil, ErrNotFound
		}

		next.Notes = note.Delete(next.Notes, id)

		return []Collection{CollectionNotes}, nil
	})
}
