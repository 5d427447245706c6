package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a labelled amount on a payslip, either an income or a
// deduction.
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type Payslip struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	UserName   string          `json:"userName"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	PayDate    time.Time       `json:"payDate"`
	Incomes    []LineItem      `json:"incomes"`
	Deductions []LineItem      `json:"deductions"`
	NetPay     decimal.Decimal `json:"netPay"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type SlipInput struct {
	UserID     string     `json:"userId"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	PayDate    string     `json:"payDate"`
	Incomes    []LineItem `json:"incomes"`
	Deductions []LineItem `json:"deductions"`
	Note       string     `json:"note"`
}
