package user

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project-manager"
	RoleDesigner       Role = "designer"
	RoleFinance        Role = "finance"
)

// User is a studio team member. Only the bcrypt hash of the password is kept.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"passwordHash"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	IsOnline     bool       `json:"isOnline"`
	LastSeen     *time.Time `json:"lastSeen,omitempty"`
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Authenticate finds the user with the given username and checks password
// against its hash.
func Authenticate(users []User, username, password string) (User, error) {
	i := slices.IndexFunc(users, func(u User) bool { return u.Username == username })
	if i < 0 {
		return User{}, ErrInvalidCredentials
	}

	u := users[i]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// SetPresence marks a user online or offline. Going offline stamps LastSeen.
func SetPresence(users []User, id string, online bool, now time.Time) []User {
	i := slices.IndexFunc(users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return users
	}

	u := users[i]
	u.IsOnline = online

	if !online {
		u.LastSeen = &now
	}

	out := slices.Clone(users)
	out[i] = u

	return out
}

func Find(users []User, id string) (User, bool) {
	i := slices.IndexFunc(users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, false
	}

	return users[i], true
}

// Online returns the users currently marked online.
func Online(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.IsOnline {
			out = append(out, u)
		}
	}

	return out
}
