package cart

import "time"

// Line is one server-side cart entry for an authenticated user.
type Line struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SyncLine is a guest cart entry submitted for reconciliation at login.
type SyncLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
