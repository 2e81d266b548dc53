package fixture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MrJamesThe3rd/studiodesk/internal/chat"
	"github.com/MrJamesThe3rd/studiodesk/internal/client"
	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/encoding"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/note"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
)

//go:embed studio.json
var studio []byte

// Data is the initial content of every collection.
type Data struct {
	Users          []user.User         `json:"users"`
	Clients        []client.Client     `json:"clients"`
	Projects       []project.Project   `json:"projects"`
	FinanceRecords []finance.Record    `json:"financeRecords"`
	ChatRooms      []chat.Room         `json:"chatRooms"`
	Notes          []note.Note         `json:"notes"`
	Documents      []document.Document `json:"documents"`
}

// seedUser accepts a plaintext password next to the stored user fields.
type seedUser struct {
	user.User
	Password string `json:"password"`
}

type rawData struct {
	Data
	Users []seedUser `json:"users"`
}

// Embedded returns the bundled demo studio.
func Embedded() (*Data, error) {
	return Decode(bytes.NewReader(studio))
}

// FromFile loads a fixture from disk. The file may be in any charset that
// encoding.NewUTF8Reader understands.
func FromFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Load picks FromFile when path is set and Embedded otherwise.
func Load(path string) (*Data, error) {
	if path == "" {
		return Embedded()
	}

	return FromFile(path)
}

// Decode parses a fixture. Plaintext passwords are replaced by bcrypt hashes;
// users carrying neither a password nor a hash cannot log in.
func Decode(r io.Reader) (*Data, error) {
	body, err := encoding.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw rawData
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	data := raw.Data
	data.Users = make([]user.User, 0, len(raw.Users))

	for _, su := range raw.Users {
		u := su.User
		if su.Password != "" {
			hash, err := user.HashPassword(su.Password)
			if err != nil {
				return nil, fmt.Errorf("hashing password for %s: %w", u.Username, err)
			}

			u.PasswordHash = hash
		}

		data.Users = append(data.Users, u)
	}

	for i := range data.FinanceRecords {
		data.FinanceRecords[i] = finance.Recompute(data.FinanceRecords[i], data.FinanceRecords[i].Payments)
	}

	return &data, nil
}
