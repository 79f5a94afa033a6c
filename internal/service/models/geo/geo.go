package geo

// State is the top level of the two-level geographic hierarchy.
type State struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Capital string `json:"capital"`
}

// City belongs to exactly one State.
type City struct {
	ID      int64  `json:"id"`
	StateID int64  `json:"stateId"`
	Name    string `json:"name"`
}

// DispatchFee is the shipping cost for a destination. A row without a city
// is the state-level fallback for cities with no override.
type DispatchFee struct {
	ID         int64  `json:"id"`
	StateID    int64  `json:"stateId"`
	CityID     *int64 `json:"cityId"`
	AmountKobo int64  `json:"amountKobo"`
}
