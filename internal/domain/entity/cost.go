package entity

import "time"

// TagCost is one group of a Cost Explorer daily result. Keys carries the
// raw group keys, e.g. "project$billing-api"; Amount is kept as the
// decimal string returned by the API.
type TagCost struct {
	Keys   []string `json:"keys"`
	Amount string   `json:"amount"`
	Unit   string   `json:"unit"`
}

// DailyCost holds every group returned for a single day.
type DailyCost struct {
	Date   time.Time `json:"date"`
	Groups []TagCost `json:"groups"`
}
