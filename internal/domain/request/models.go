package request

import (
	"time"

	"hrportal/internal/domain/auth"
)

type Kind string

const (
	KindLeave       Kind = "leave"
	KindOvertime    Kind = "overtime"
	KindHolidaySwap Kind = "holiday_swap"
)

func (k Kind) Valid() bool {
	switch k {
	case KindLeave, KindOvertime, KindHolidaySwap:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is the shared shape behind leave, overtime and holiday-swap
// submissions. Kind-specific fields are zero for the kinds that do not use
// them.
type Request struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	UserID         string     `json:"userId"`
	UserName       string     `json:"userName"`
	UserDepartment string     `json:"userDepartment"`
	Subtype        string     `json:"subtype"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	StartClock     string     `json:"startClock,omitempty"`
	EndClock       string     `json:"endClock,omitempty"`
	OriginalDate   *time.Time `json:"originalDate,omitempty"`
	TargetDate     *time.Time `json:"targetDate,omitempty"`
	TotalDays      float64    `json:"totalDays,omitempty"`
	TotalMinutes   int        `json:"totalMinutes,omitempty"`
	DurationLabel  string     `json:"durationLabel,omitempty"`
	Reason         string     `json:"reason"`
	Status         Status     `json:"status"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	ReviewedBy     string     `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
}

// SubmitInput carries the validated-at-the-edge form fields for any kind.
type SubmitInput struct {
	Kind         Kind
	Subtype      string
	StartDate    *time.Time
	EndDate      *time.Time
	StartClock   string
	EndClock     string
	OriginalDate *time.Time
	TargetDate   *time.Time
	Reason       string
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID     string
	Name       string
	Role       auth.Role
	Department string
}
