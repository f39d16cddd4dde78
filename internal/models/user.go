package models

import "strings"

// User is an operator account allowed to drive config flows over the API.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Credentials is the body of both /auth/sign-up and /auth/sign-in.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Normalize trims the username; passwords are taken verbatim.
func (c Credentials) Normalize() Credentials {
	c.Username = strings.TrimSpace(c.Username)
	return c
}

// Blank reports whether either field is empty after trimming.
func (c Credentials) Blank() bool {
	return strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Password) == ""
}
