package models

import "time"

// Item belongs to exactly one user. Tax is a percentage applied on top of
// Price; both Description and Tax are optional.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Tax         *float64   `json:"tax,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TotalPrice returns the price with tax applied.
func (i *Item) TotalPrice() float64 {
	if i.Tax == nil {
		return i.Price
	}
	return i.Price + i.Price*(*i.Tax/100)
}

// RequestLog is a single recorded HTTP request. UserID is set only for
// authenticated requests.
type RequestLog struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	DurationMS float64   `json:"duration_ms"`
	UserID     *string   `json:"user_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
