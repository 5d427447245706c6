package holiday

import "time"

// Assignment marks one employee's holiday on one date, keyed by
// (department, date, employee).
type Assignment struct {
	Department  string    `json:"department"`
	Date        time.Time `json:"date"`
	EmployeeUID string    `json:"employeeUid"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryEntry is one line of the append-only change log, bucketed by
// (year, month) of the assignment date. Entries are never edited or
// removed.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Action      string    `json:"action"`
	Department  string    `json:"department"`
	Date        time.Time `json:"date"`
	EmployeeUID string    `json:"employeeUid"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	ActionAssign   = "assign"
	ActionUnassign = "unassign"
)
