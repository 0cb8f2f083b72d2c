package entities

import "time"

// ChatEntry is one message of the per-user transcript stored as a JSON
// blob on the users row.
type ChatEntry struct {
	Role       string    `json:"role"`
	Collection string    `json:"collection"`
	Content    string    `json:"content"`
	At         time.Time `json:"at"`
}
