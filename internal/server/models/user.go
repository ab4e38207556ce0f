package models

import "time"

// User is a registered account. PasswordDigest is a bcrypt digest; the
// plaintext password is never stored.
type User struct {
	ID             string
	UserName       string
	PasswordDigest string
	Email          *string
	CreatedAt      time.Time
}
