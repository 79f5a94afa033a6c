package order

// QueryOrdersModel represents filter parameters for querying orders
type QueryOrdersModel struct {
	Ids        []int64  `json:"ids,omitempty"`
	UserIds    []int64  `json:"userIds,omitempty"`
	References []string `json:"references,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}
