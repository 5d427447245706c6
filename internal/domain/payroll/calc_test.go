package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNetPay(t *testing.T) {
	incomes := []LineItem{
		{Label: "Base salary", Amount: amt("30000")},
		{Label: "Overtime", Amount: amt("1250.50")},
	}
	deductions := []LineItem{
		{Label: "Social security", Amount: amt("750")},
		{Label: "Withholding tax", Amount: amt("912.333")},
	}

	got := NetPay(incomes, deductions)
	if got.StringFixed(2) != "29588.17" {
		t.Fatalf("net = %s, want 29588.17", got.StringFixed(2))
	}
}

func TestNetPayNoDeductions(t *testing.T) {
	got := NetPay([]LineItem{{Label: "Base", Amount: amt("15000")}}, nil)
	if !got.Equal(amt("15000")) {
		t.Fatalf("net = %s, want 15000", got)
	}
}

func TestNetPayCanGoNegative(t *testing.T) {
	// Deductions larger than income are unusual but not forbidden; the net
	// simply reflects them.
	got := NetPay(
		[]LineItem{{Label: "Base", Amount: amt("100")}},
		[]LineItem{{Label: "Advance repayment", Amount: amt("250")}},
	)
	if got.StringFixed(2) != "-150.00" {
		t.Fatalf("net = %s, want -150.00", got.StringFixed(2))
	}
}
