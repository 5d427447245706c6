package nav

import "sort"

// Page names the navigable views of the portal. The identifiers are the
// wire values the frontend routes on.
type Page string

const (
	PageDashboard         Page = "dashboard"
	PageProfile           Page = "profile"
	PageProfileView       Page = "profile_view"
	PageLeaveForm         Page = "leave_form"
	PageLeaveHistory      Page = "leave_history"
	PageOTForm            Page = "ot_form"
	PageOTHistory         Page = "ot_history"
	PageHolidaySwapForm   Page = "holiday_swap_form"
	PageHolidaySwapHist   Page = "holiday_swap_history"
	PageApprovals         Page = "approvals"
	PageOTApproval        Page = "ot_approval"
	PageAdmin             Page = "admin"
	PageEmployeeList      Page = "employee_list"
	PagePayslip           Page = "payslip"
	PagePayslipAdmin      Page = "payslip_admin"
	PageHolidayCalendar   Page = "holiday_calendar"
	PageCompanyProfile    Page = "company_profile"
	PageSettings          Page = "settings"
)

var knownPages = map[Page]bool{
	PageDashboard:        true,
	PageProfile:          true,
	PageProfileView:      true,
	PageLeaveForm:        true,
	PageLeaveHistory:     true,
	PageOTForm:           true,
	PageOTHistory:        true,
	PageHolidaySwapForm:  true,
	PageHolidaySwapHist:  true,
	PageApprovals:        true,
	PageOTApproval:       true,
	PageAdmin:            true,
	PageEmployeeList:     true,
	PagePayslip:          true,
	PagePayslipAdmin:     true,
	PageHolidayCalendar:  true,
	PageCompanyProfile:   true,
	PageSettings:         true,
}

// Known reports whether the identifier names an existing page.
func Known(page Page) bool {
	return knownPages[page]
}

// Pages lists every navigable page identifier.
func Pages() []Page {
	out := make([]Page, 0, len(knownPages))
	for page := range knownPages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
