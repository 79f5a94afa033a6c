package userprofile

import "time"

// UserProfile holds a registered user's persisted shipping defaults,
// upserted whenever the user completes checkout.
type UserProfile struct {
	UserID     int64     `json:"userId"`
	Phone      string    `json:"phone"`
	StateID    *int64    `json:"stateId"`
	CityID     *int64    `json:"cityId"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postalCode"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
