// Package models contains the domain types exchanged with the Gestor
// backend and cached locally.
package models

import "time"

// User is the identity record returned by the backend. Field names follow
// the backend's JSON contract.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credentials couples a bearer token with the user it authenticates.
// This is what login and registration return and what the credential
// store persists across restarts.
type Credentials struct {
	Token string
	User  User
}

// RegisterRequest is the payload for account creation. Phone, CPF and
// address are optional and omitted from the body when empty.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	CPF      string `json:"cpf,omitempty"`
	Address  string `json:"address,omitempty"`
}
