package models

import "time"

// Category is a user-defined transaction label. Names are unique per user
// without regard to case; transactions refer to categories by name only.
type Category struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
