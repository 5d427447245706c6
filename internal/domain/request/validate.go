package request

import (
	"strings"

	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/overtime"
)

// build validates the submission for its kind and computes the derived
// quantity. On failure it returns a ValidationError and the request must
// not be written.
func build(input SubmitInput) (Request, error) {
	verr := &ValidationError{}

	if !input.Kind.Valid() {
		verr.Add("kind", "unknown request kind")
		return Request{}, verr
	}
	if strings.TrimSpace(input.Reason) == "" {
		verr.Add("reason", "reason is required")
	}

	req := Request{
		Kind:    input.Kind,
		Subtype: strings.TrimSpace(input.Subtype),
		Reason:  strings.TrimSpace(input.Reason),
		Status:  StatusPending,
	}

	switch input.Kind {
	case KindLeave:
		buildLeave(input, &req, verr)
	case KindOvertime:
		buildOvertime(input, &req, verr)
	case KindHolidaySwap:
		buildHolidaySwap(input, &req, verr)
	}

	if err := verr.OrNil(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func buildLeave(input SubmitInput, req *Request, verr *ValidationError) {
	if req.Subtype == "" {
		verr.Add("subtype", "leave type is required")
	}
	if input.StartDate == nil {
		verr.Add("startDate", "start date is required")
	}
	if input.EndDate == nil {
		verr.Add("endDate", "end date is required")
	}
	if input.StartDate == nil || input.EndDate == nil {
		return
	}
	if input.EndDate.Before(*input.StartDate) {
		verr.Add("startDate", "must be on or before endDate")
		return
	}

	days, err := leave.CountDays(req.Subtype, *input.StartDate, *input.EndDate)
	if err != nil {
		verr.Add("startDate", err.Error())
		return
	}
	req.StartDate = input.StartDate
	req.EndDate = input.EndDate
	req.TotalDays = days
}

func buildOvertime(input SubmitInput, req *Request, verr *ValidationError) {
	switch req.Subtype {
	case overtime.SubtypeMorning, overtime.SubtypeHoliday:
	case "":
		verr.Add("subtype", "overtime type is required")
		return
	default:
		verr.Add("subtype", "unknown overtime type")
		return
	}
	if input.StartDate == nil {
		verr.Add("startDate", "overtime date is required")
	}

	minutes, err := overtime.Minutes(input.StartClock, input.EndClock)
	if err != nil {
		verr.Add("startClock", err.Error())
		return
	}
	if input.StartDate == nil {
		return
	}

	req.StartDate = input.StartDate
	req.EndDate = input.StartDate
	req.StartClock = strings.TrimSpace(input.StartClock)
	req.EndClock = strings.TrimSpace(input.EndClock)
	req.TotalMinutes = minutes
	req.DurationLabel = overtime.FormatDuration(req.Subtype, minutes)
}

func buildHolidaySwap(input SubmitInput, req *Request, verr *ValidationError) {
	if input.OriginalDate == nil {
		verr.Add("originalDate", "original holiday date is required")
	}
	if input.TargetDate == nil {
		verr.Add("targetDate", "target work date is required")
	}
	if input.StartClock != "" || input.EndClock != "" {
		// Time range is recorded verbatim; no duration is derived for swaps.
		if _, err := overtime.ParseClock(input.StartClock); err != nil {
			verr.Add("startClock", err.Error())
		}
		if _, err := overtime.ParseClock(input.EndClock); err != nil {
			verr.Add("endClock", err.Error())
		}
	}
	if input.OriginalDate != nil && input.TargetDate != nil && input.OriginalDate.Equal(*input.TargetDate) {
		verr.Add("targetDate", "target date must differ from original date")
	}
	if len(verr.Issues) > 0 {
		return
	}
	req.OriginalDate = input.OriginalDate
	req.TargetDate = input.TargetDate
	req.StartClock = strings.TrimSpace(input.StartClock)
	req.EndClock = strings.TrimSpace(input.EndClock)
}
