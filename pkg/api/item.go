package api

import "time"

// CreateItemRequest creates an item owned by the calling user.
type CreateItemRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Tax         *float64 `json:"tax,omitempty"`
}

// UpdateItemRequest partially updates an item; nil fields are left
// unchanged.
type UpdateItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Tax         *float64 `json:"tax,omitempty"`
}

// ItemResponse is the public view of an item, with the tax-inclusive total
// computed server-side.
type ItemResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Tax         *float64   `json:"tax,omitempty"`
	TotalPrice  float64    `json:"total_price"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ItemWithOwnerResponse is an item together with its owner.
type ItemWithOwnerResponse struct {
	ItemResponse
	Owner UserResponse `json:"owner"`
}

// StatsResponse is the public service counters.
type StatsResponse struct {
	TotalUsers int `json:"total_users"`
	TotalItems int `json:"total_items"`
}

// MyStatsResponse is the per-user counters.
type MyStatsResponse struct {
	User         string    `json:"user"`
	Email        string    `json:"email"`
	MyItemsCount int       `json:"my_items_count"`
	MemberSince  time.Time `json:"member_since"`
}
