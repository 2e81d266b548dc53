package workspace

import (
	"context"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/user"
)

func (s *Service) Users() []user.User {
	var out []user.User

	s.read(func(st State) { out = slices.Clone(st.Users) })

	return out
}

func (s *Service) GetUser(id string) (user.User, error) {
	var (
		u  user.User
		ok bool
	)

	s.read(func(st State) { u, ok = user.Find(st.Users, id) })

	if !ok {
		return user.User{}, ErrNotFound
	}

	return u, nil
}

// Login checks the credentials and marks the user online.
func (s *Service) Login(ctx context.Context, username, password string) (user.User, error) {
	var u user.User

	err := s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		var err error

		u, err = user.Authenticate(next.Users, username, password)
		if err != nil {
			return nil, err
		}

		next.Users = user.SetPresence(next.Users, u.ID, true, now)
		u, _ = user.Find(next.Users, u.ID)

		return []Collection{CollectionUsers}, nil
	})
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// Logout marks the user offline and stamps their last-seen time.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		if _, ok := user.Find(next.Users, userID); !ok {
			return nil, ErrNotFound
		}

		next.Users = user.SetPresence(next.Users, userID, false, now)

		return []Collection{CollectionUsers}, nil
	})
}
