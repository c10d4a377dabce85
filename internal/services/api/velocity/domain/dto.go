// Package domain holds DTOs for velocity http and service contracts
package domain

import "time"

// JSON field names here are load bearing: downstream charts key off the exact
// camelCase names and will silently render nothing if they drift

// Record statuses returned by the ingest operation
const (
	// StatusCreated means no fact existed for (domain, date) before this call
	StatusCreated = "created"
	// StatusUpdated means an existing fact was overwritten in place
	StatusUpdated = "updated"
)

// RecordInput is one day of backlink movement for a domain
// totalCount is the cumulative snapshot as reported by the crawler and is not
// cross checked against newCount/lostCount, that consistency is the caller's job
type RecordInput struct {
	DomainID   string `json:"domainId" validate:"required,min=1,max=64" example:"dom_8f14e45f"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02" example:"2026-03-01"`
	NewCount   int    `json:"newCount" validate:"min=0" example:"12"`
	LostCount  int    `json:"lostCount" validate:"min=0" example:"3"`
	TotalCount int    `json:"totalCount" validate:"min=0" example:"1480"`
}

// RecordResult reports whether the upsert created or updated the day's fact
type RecordResult struct {
	Status string `json:"status" example:"created"`
}

// WindowInput selects a domain and a trailing window in days
// a zero window falls back to the service default of 30 days
type WindowInput struct {
	DomainID   string `json:"domainId" validate:"required,min=1,max=64" example:"dom_8f14e45f"`
	WindowDays int    `json:"windowDays,omitempty" validate:"omitempty,min=1,max=365" example:"30"`
}

// Fact is one stored day of velocity history
// recordedAt is absent for rows predating ingest timestamps
type Fact struct {
	Date       string     `json:"date" example:"2026-03-01"`
	NewCount   int        `json:"newCount" example:"12"`
	LostCount  int        `json:"lostCount" example:"3"`
	NetChange  int        `json:"netChange" example:"9"`
	TotalCount int        `json:"totalCount" example:"1480"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

// Stats summarizes the window, averages divide by daysTracked
type Stats struct {
	AvgNewPerDay  float64 `json:"avgNewPerDay" example:"4.2"`
	AvgLostPerDay float64 `json:"avgLostPerDay" example:"1.1"`
	AvgNetChange  float64 `json:"avgNetChange" example:"3.1"`
	TotalNew      int     `json:"totalNew" example:"126"`
	TotalLost     int     `json:"totalLost" example:"33"`
	NetChange     int     `json:"netChange" example:"93"`
	DaysTracked   int     `json:"daysTracked" example:"30"`
}

// Anomaly is one statistically unusual day in the window
type Anomaly struct {
	Date           string  `json:"date" example:"2026-03-09"`
	NewCount       int     `json:"newCount" example:"240"`
	LostCount      int     `json:"lostCount" example:"2"`
	NetChange      int     `json:"netChange" example:"238"`
	ZScore         float64 `json:"zScore" example:"3.4"`
	Classification string  `json:"classification" example:"spike"`
	Severity       string  `json:"severity" example:"high"`
}
