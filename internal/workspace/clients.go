package workspace

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/client"
)

func (s *Service) Clients(query string) []client.Client {
	var out []client.Client

	s.read(func(st State) { out = client.Filter(st.Clients, query) })

	return out
}

func (s *Service) GetClient(id string) (client.Client, error) {
	var (
		c  client.Client
		ok bool
	)

	s.read(func(st State) { c, ok = client.Find(st.Clients, id) })

	if !ok {
		return client.Client{}, ErrNotFound
	}

	return c, nil
}

func (s *Service) CreateClient(ctx context.Context, params client.CreateParams) (client.Client, error) {
	var created client.Client

	err := s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		next.Clients, created = client.Add(next.Clients, params, now)
		return []Collection{CollectionClients}, nil
	})
	if err != nil {
		return client.Client{}, err
	}

	return created, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, upd client.Update) (client.Client, error) {
	var updated client.Client

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := client.Find(next.Clients, id); !ok {
			return nil, ErrNotFound
		}

		next.Clients = client.UpdateClient(next.Clients, id, upd)
		updated, _ = client.Find(next.Clients, id)

		return []Collection{CollectionClients}, nil
	})
	if err != nil {
		return client.Client{}, err
	}

	return updated, nil
}

// DeleteClient removes a client. Projects keep their clientId and client
// name; the reference is weak.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	return s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := client.Find(next.Clients, id); !ok {
			return nil, ErrNotFound
		}

		next.Clients = client.Delete(next.Clients, id)

		return []Collection{CollectionClients}, nil
	})
}
