package models

import "time"

// Note is a single user note. UserID is the owner's subject id.
type Note struct {
	ID        string    `json:"note_id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Priority  int       `json:"priority"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"date"`
}
