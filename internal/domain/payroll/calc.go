package payroll

import "github.com/shopspring/decimal"

// NetPay sums incomes, subtracts deductions and rounds the result to two
// decimal places. It is recomputed server-side on every write; the client
// never supplies a net figure.
func NetPay(incomes, deductions []LineItem) decimal.Decimal {
	net := decimal.Zero
	for _, item := range incomes {
		net = net.Add(item.Amount)
	}
	for _, item := range deductions {
		net = net.Sub(item.Amount)
	}
	return net.Round(2)
}
