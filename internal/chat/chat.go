package chat

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Room is a conversation between team members, optionally about a project.
type Room struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProjectID    string    `json:"projectId,omitempty"`
	Messages     []Message `json:"messages"`
	Participants []string  `json:"participants"`
	CreatedDate  time.Time `json:"createdDate"`
}

// Message is a single chat line. Username is a snapshot taken when the
// message was sent.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsEdited  bool      `json:"isEdited,omitempty"`
	ReplyTo   string    `json:"replyTo,omitempty"`
}

// SendMessage appends text to the room roomID. Text that is blank after
// trimming is dropped, and an unknown room leaves the input unchanged.
func SendMessage(rooms []Room, roomID, userID, username, text string, now time.Time) ([]Room, Message, bool) {
	if strings.TrimSpace(text) == "" {
		return rooms, Message{}, false
	}

	i := slices.IndexFunc(rooms, func(r Room) bool { return r.ID == roomID })
	if i < 0 {
		return rooms, Message{}, false
	}

	m := Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Message:   text,
		Timestamp: now,
	}

	r := rooms[i]
	r.Messages = append(slices.Clone(r.Messages), m)

	out := slices.Clone(rooms)
	out[i] = r

	return out, m, true
}

func Find(rooms []Room, id string) (Room, bool) {
	i := slices.IndexFunc(rooms, func(r Room) bool { return r.ID == id })
	if i < 0 {
		return Room{}, false
	}

	return rooms[i], true
}

// FilterRooms returns the rooms whose name contains query, ignoring case.
func FilterRooms(rooms []Room, query string) []Room {
	q := strings.ToLower(query)

	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if q == "" || strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}

	return out
}

// LastMessage returns the most recent message of a room.
func (r Room) LastMessage() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}

	return r.Messages[len(r.Messages)-1], true
}
