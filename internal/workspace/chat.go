package workspace

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/chat"
)

func (s *Service) Rooms(query string) []chat.Room {
	var out []chat.Room

	s.read(func(st State) { out = chat.FilterRooms(st.ChatRooms, query) })

	return out
}

func (s *Service) GetRoom(id string) (chat.Room, error) {
	var (
		r  chat.Room
		ok bool
	)

	s.read(func(st State) { r, ok = chat.Find(st.ChatRooms, id) })

	if !ok {
		return chat.Room{}, ErrNotFound
	}

	return r, nil
}

// SendMessage posts text to a room as the given user. The bool is false
// when the text was blank and nothing was posted.
func (s *Service) SendMessage(ctx context.Context, roomID, userID, username, text string) (chat.Message, bool, error) {
	var (
		msg  chat.Message
		sent bool
	)

	err := s.apply(ctx, func(next *State, now time.Time) ([]Collection, error) {
		if _, ok := chat.Find(next.ChatRooms, roomID); !ok {
			return nil, ErrNotFound
		}

		next.ChatRooms, msg, sent = chat.SendMessage(next.ChatRooms, roomID, userID, username, text, now)
		if !sent {
			return nil, nil
		}

		return []Collection{CollectionChatRooms}, nil
	})
	if err != nil {
		return chat.Message{}, false, err
	}

	return msg, sent, nil
}
