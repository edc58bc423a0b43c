package models

import "time"

type DayTotal struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
}

// Summary holds the figures derived from one identity's entries at a point in time.
type Summary struct {
	Today    float64 `json:"today"`
	Week     float64 `json:"week"`
	Total    float64 `json:"total"`
	Sessions int     `json:"sessions"`
}
