package client

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a person or company the studio works for.
//
// TotalSpent is maintained by hand; it is not derived from finance records.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Company     string    `json:"company,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ProjectIDs  []string  `json:"projectIds"`
	CreatedDate time.Time `json:"createdDate"`
	TotalSpent  int64     `json:"totalSpent"` // Amount in sen
}

type CreateParams struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	Company    string
	Notes      string
	ProjectIDs []string
}

// Update holds the fields to overwrite on a client. Nil fields are kept.
type Update struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	Company    *string
	Notes      *string
	ProjectIDs *[]string
	TotalSpent *int64
}

// Add appends a new client created at now. TotalSpent always starts at zero.
func Add(clients []Client, params CreateParams, now time.Time) ([]Client, Client) {
	c := Client{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Email:       params.Email,
		Phone:       params.Phone,
		Address:     params.Address,
		Company:     params.Company,
		Notes:       params.Notes,
		ProjectIDs:  slices.Clone(params.ProjectIDs),
		CreatedDate: now,
		TotalSpent:  0,
	}

	if c.ProjectIDs == nil {
		c.ProjectIDs = []string{}
	}

	return append(slices.Clone(clients), c), c
}

// UpdateClient merges upd into the client with the given id. The input is
// returned unchanged when no client matches.
func UpdateClient(clients []Client, id string, upd Update) []Client {
	i := slices.IndexFunc(clients, func(c Client) bool { return c.ID == id })
	if i < 0 {
		return clients
	}

	c := clients[i]

	if upd.Name != nil {
		c.Name = *upd.Name
	}

	if upd.Email != nil {
		c.Email = *upd.Email
	}

	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}

	if upd.Address != nil {
		c.Address = *upd.Address
	}

	if upd.Company != nil {
		c.Company = *upd.Company
	}

	if upd.Notes != nil {
		c.Notes = *upd.Notes
	}

	if upd.ProjectIDs != nil {
		c.ProjectIDs = slices.Clone(*upd.ProjectIDs)
	}

	if upd.TotalSpent != nil {
		c.TotalSpent = *upd.TotalSpent
	}

	out := slices.Clone(clients)
	out[i] = c

	return out
}

func Delete(clients []Client, id string) []Client {
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if c.ID != id {
			out = append(out, c)
		}
	}

	return out
}

func Find(clients []Client, id string) (Client, bool) {
	i := slices.IndexFunc(clients, func(c Client) bool { return c.ID == id })
	if i < 0 {
		return Client{}, false
	}

	return clients[i], true
}

// Filter returns the clients whose name, email or company contains query,
// ignoring case. An empty query matches every client.
func Filter(clients []Client, query string) []Client {
	q := strings.ToLower(query)

	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Company), q) {
			out = append(out, c)
		}
	}

	return out
}
