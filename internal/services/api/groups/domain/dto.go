// Package domain holds DTOs for keyword group http and service contracts
package domain

// JSON field names are consumed verbatim by the rank charts, keep them stable

// CreateGroupInput names a keyword cluster under a domain
type CreateGroupInput struct {
	DomainID string `json:"domainId" validate:"required,min=1,max=64" example:"dom_8f14e45f"`
	Name     string `json:"name" validate:"required,min=1,max=120" example:"branded terms"`
	Color    string `json:"color,omitempty" validate:"omitempty,hexcolor" example:"#2f81f7"`
}

// Group is a stored keyword cluster
type Group struct {
	GroupID  string `json:"groupId" example:"6a2f1c2e-72cd-4a5e-9a67-5f8f1f6f3d1c"`
	DomainID string `json:"domainId" example:"dom_8f14e45f"`
	Name     string `json:"name" example:"branded terms"`
	Color    string `json:"color" example:"#2f81f7"`
}

// MemberInput links one keyword to a group
// a keyword may belong to any number of groups, adding twice is a no-op
type MemberInput struct {
	GroupID   string `json:"groupId" validate:"required,uuid4"`
	KeywordID string `json:"keywordId" validate:"required,min=1,max=64" example:"kw_4521"`
}

// PerformanceInput selects one group and a trailing window in days
type PerformanceInput struct {
	GroupID    string `json:"groupId" validate:"required,uuid4"`
	WindowDays int    `json:"windowDays,omitempty" validate:"omitempty,min=1,max=365" example:"30"`
}

// PerformancePoint is one averaged member position for a date
// averagePosition carries exactly one decimal of precision
type PerformancePoint struct {
	Date            string  `json:"date" example:"2026-03-01"`
	AveragePosition float64 `json:"averagePosition" example:"5.0"`
}

// AllPerformanceInput selects every group under a domain
type AllPerformanceInput struct {
	DomainID   string `json:"domainId" validate:"required,min=1,max=64" example:"dom_8f14e45f"`
	WindowDays int    `json:"windowDays,omitempty" validate:"omitempty,min=1,max=365" example:"30"`
}

// GroupSeries attaches display metadata to one group's series
// searchVolume sums the latest known volume of every member keyword and
// searchVolumeLabel is its grouped rendering for dashboards
type GroupSeries struct {
	GroupID           string             `json:"groupId"`
	Name              string             `json:"name"`
	Color             string             `json:"color"`
	SearchVolume      int64              `json:"searchVolume" example:"128400"`
	SearchVolumeLabel string             `json:"searchVolumeLabel" example:"128,400"`
	Series            []PerformancePoint `json:"series"`
}
