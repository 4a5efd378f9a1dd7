package models

import "time"

// Token is the opaque bearer credential of a user. A user has at most one.
type Token struct {
	Key       string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
