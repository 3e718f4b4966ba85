package models

import "time"

// User represents an account entity used for authentication and authorization.
// PasswordHash is never serialized; use [User.Public] or [User.ListItem] for
// anything that leaves the server.
type User struct {
	// UserID is the opaque unique identifier of the user (UUIDv7 string).
	UserID string `json:"user_id"`

	// Username is the display name, 3 to 40 characters.
	Username string `json:"username"`

	// Email is unique across all users and used as the login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never the plaintext and never leaves the server.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns the projection echoed back by register and login.
func (u User) Public() PublicUser {
	return PublicUser{Username: u.Username}
}

// ListItem returns the projection used by the users directory.
func (u User) ListItem() UserListItem {
	return UserListItem{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Identity returns the identity embedded into tokens and request contexts.
func (u User) Identity() Identity {
	return Identity{UserID: u.UserID, Name: u.Username}
}

// PublicUser is the only user data returned by register and login.
type PublicUser struct {
	Username string `json:"username"`
}

// UserListItem is a user without credentials.
type UserListItem struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
