package grpc

import "github.com/dmitrijs2005/notekeeper/internal/server/models"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse answers both Register and Login.
type AuthResponse struct {
	Response string `json:"response"`
	Token    string `json:"token"`
}

type ListNotesRequest struct{}

type ListNotesResponse struct {
	Notes []*models.Note `json:"notes"`
}

type CreateNoteRequest struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	Text     string `json:"text"`
}

type CreateNoteResponse struct {
	Note *models.Note `json:"note"`
}
