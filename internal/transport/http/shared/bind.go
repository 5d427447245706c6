package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report the json field name, not the Go one.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Decode unmarshals the body into dst and runs struct validation. The
// returned issues are ready for the error envelope.
func Decode(r *http.Request, dst any) ([]FieldIssue, error) {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return nil, err
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Reason: reasonFor(fe)})
	}
	return issues, nil
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
