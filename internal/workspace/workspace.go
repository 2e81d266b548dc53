package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/chat"
	"github.com/MrJamesThe3rd/studiodesk/internal/client"
	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/fixture"
	"github.com/MrJamesThe3rd/studiodesk/internal/note"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
)

var ErrNotFound = errors.New("not found")

// Collection names one persisted entity collection.
type Collection string

const (
	CollectionUsers          Collection = "users"
	CollectionClients        Collection = "clients"
	CollectionProjects       Collection = "projects"
	CollectionFinanceRecords Collection = "financeRecords"
	CollectionChatRooms      Collection = "chatRooms"
	CollectionNotes          Collection = "notes"
	CollectionDocuments      Collection = "documents"
)

var Collections = []Collection{
	CollectionUsers,
	CollectionClients,
	CollectionProjects,
	CollectionFinanceRecords,
	CollectionChatRooms,
	CollectionNotes,
	CollectionDocuments,
}

//go:generate mockgen -source=workspace.go -destination=repository_mock.go -package=workspace
type Repository interface {
	// LoadCollections returns the stored JSON body of every collection that
	// has been saved before.
	LoadCollections(ctx context.Context) (map[Collection][]byte, error)
	// SaveCollections writes all docs in one transaction.
	SaveCollections(ctx context.Context, docs map[Collection][]byte) error
}

// State is every collection of the studio at one point in time.
type State struct {
	Users          []user.User
	Clients        []client.Client
	Projects       []project.Project
	FinanceRecords []finance.Record
	ChatRooms      []chat.Room
	Notes          []note.Note
	Documents      []document.Document
}

func stateFromFixture(d *fixture.Data) State {
	if d == nil {
		return State{}
	}

	seed := State{
		Users:          d.Users,
		Clients:        d.Clients,
		Projects:       d.Projects,
		FinanceRecords: d.FinanceRecords,
		ChatRooms:      d.ChatRooms,
		Notes:          d.Notes,
		Documents:      d.Documents,
	}

	return seed.clone()
}

func (s *State) field(c Collection) (any, error) {
	switch c {
	case CollectionUsers:
		return &s.Users, nil
	case CollectionClients:
		return &s.Clients, nil
	case CollectionProjects:
		return &s.Projects, nil
	case CollectionFinanceRecords:
		return &s.FinanceRecords, nil
	case CollectionChatRooms:
		return &s.ChatRooms, nil
	case CollectionNotes:
		return &s.Notes, nil
	case CollectionDocuments:
		return &s.Documents, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}
}

func (s *State) encode(c Collection) ([]byte, error) {
	f, err := s.field(c)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", c, err)
	}

	return body, nil
}

// decode replaces collection c with the stored body. The target is zeroed
// first so fields absent from body do not survive from the seed.
func (s *State) decode(c Collection, body []byte) error {
	f, err := s.field(c)
	if err != nil {
		return err
	}

	reflect.ValueOf(f).Elem().SetZero()

	if err := json.Unmarshal(body, f); err != nil {
		return fmt.Errorf("decoding %s: %w", c, err)
	}

	return nil
}

func (s State) clone() State {
	return State{
		Users:          slices.Clone(s.Users),
		Clients:        slices.Clone(s.Clients),
		Projects:       slices.Clone(s.Projects),
		FinanceRecords: slices.Clone(s.FinanceRecords),
		ChatRooms:      slices.Clone(s.ChatRooms),
		Notes:          slices.Clone(s.Notes),
		Documents:      slices.Clone(s.Documents),
	}
}

// Service owns the studio state. Reads are served from memory; every
// mutation is persisted before it becomes visible.
type Service struct {
	mu    sync.RWMutex
	repo  Repository
	state State
	now   func() time.Time
}

// Open loads the stored collections. Collections never saved before are
// taken from seed and written back in a single transaction.
func Open(ctx context.Context, repo Repository, seed *fixture.Data) (*Service, error) {
	stored, err := repo.LoadCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}

	state := stateFromFixture(seed)
	missing := make(map[Collection][]byte)

	for _, c := range Collections {
		body, ok := stored[c]
		if ok {
			if err := state.decode(c, body); err != nil {
				return nil, err
			}

			continue
		}

		body, err := state.encode(c)
		if err != nil {
			return nil, err
		}

		missing[c] = body
	}

	if len(missing) > 0 {
		if err := repo.SaveCollections(ctx, missing); err != nil {
			return nil, fmt.Errorf("seeding workspace: %w", err)
		}
	}

	return &Service{repo: repo, state: state, now: time.Now}, nil
}

// Snapshot returns the current state. The returned slices are copies but
// share nested values; callers must not modify them.
func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.clone()
}

// apply runs fn against a copy of the state and persists the collections it
// reports as changed. The copy replaces the live state only after the write
// succeeds.
func (s *Service) apply(ctx context.Context, fn func(next *State, now time.Time) ([]Collection, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state

	changed, err := fn(&next, s.now())
	if err != nil {
		return err
	}

	if len(changed) == 0 {
		return nil
	}

	docs := make(map[Collection][]byte, len(changed))

	for _, c := range changed {
		body, err := next.encode(c)
		if err != nil {
			return err
		}

		docs[c] = body
	}

	if err := s.repo.SaveCollections(ctx, docs); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}

	s.state = next

	return nil
}

func (s *Service) read(fn func(st State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn(s.state)
}
