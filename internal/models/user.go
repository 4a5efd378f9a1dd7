package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the client-facing view of a user, with the ids of the posts it authored.
type PublicUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Blogs    []string `json:"blogs"`
}

// Public strips the credentials from u.
func (u User) Public(blogIDs []string) PublicUser {
	if blogIDs == nil {
		blogIDs = []string{}
	}
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Blogs: blogIDs}
}
