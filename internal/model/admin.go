package model

import "time"

// Admin is a user granted access to the submissions dashboard.
type Admin struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
