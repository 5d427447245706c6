package notifications

import "time"

const (
	TypeRequestSubmitted = "request_submitted"
	TypeRequestApproved  = "request_approved"
	TypeRequestRejected  = "request_rejected"
	TypePasswordReset    = "password_reset"
	TypePayslipPublished = "payslip_published"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmailJob is what gets queued for the mail worker; sending happens out of
// the request path.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
