package domain

import "time"

type Event struct {
	ID          uint       `json:"id"`
	ClubID      uint       `json:"club_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      time.Time  `json:"ends_at"`
	Active      bool       `json:"active"`
	Categories  []Category `json:"categories,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Category is a bookable unit within an event, with a bounded capacity.
type Category struct {
	ID       uint   `json:"id"`
	EventID  uint   `json:"event_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
