// Package models holds the records persisted by the repositories.
package models

import "time"

// User is a stored credential record. UserName is the identity key;
// PasswordHash is an encoded hash and never the plaintext password.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserInfo is the listing projection of a User. It never carries the hash.
type UserInfo struct {
	UserName  string
	CreatedAt time.Time
}
