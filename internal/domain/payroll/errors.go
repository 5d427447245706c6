package payroll

import "errors"

var (
	ErrNotFound   = errors.New("payslip not found")
	ErrPermission = errors.New("not allowed to manage payslips")
	ErrDuplicate  = errors.New("payslip already exists for this user and month")
)
