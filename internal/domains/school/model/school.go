package model

import "time"

// School is one directory entry. Used across repository, service and
// handler layers; the JSON field names are the public API contract.
type School struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email_id"`
	Students  *int      `json:"students"` // nullable: rows predating the column
	Image     *string   `json:"image"`    // nullable reference path
	CreatedAt time.Time `json:"created_at"`
}

// AggregateStats holds the raw aggregates computed over all records at
// query time. Formatting for display happens in the service layer.
type AggregateStats struct {
	TotalSchools  int   `json:"total_schools"`
	TotalCities   int   `json:"total_cities"`
	TotalStudents int64 `json:"total_students"`
}
