package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jobtrackr/jobtrackr/internal/dtos"
)

// FieldError is one violation in a rejected write request. The API
// aggregates every violation into a single response so a client can
// fix all of them in one round trip.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// createMessages maps field path -> failed tag -> message for create
// requests. Paths use the JSON names with array indexes stripped.
var createMessages = map[string]map[string]string{
	"position": {
		"required": "Position is required",
		"min":      "Position must be between 1 and 100 characters",
		"max":      "Position must be between 1 and 100 characters",
	},
	"company": {
		"required": "Company is required",
		"min":      "Company must be between 1 and 100 characters",
		"max":      "Company must be between 1 and 100 characters",
	},
	"salary": {
		"required": "Salary is required",
	},
	"salary.amount": {
		"required": "Salary amount is required",
		"gte":      "Salary amount must be a non-negative number",
	},
	"salary.currency": {
		"required": "Salary currency is required",
		"len":      "Currency must be 3 characters (e.g., USD)",
	},
	"link": {
		"required": "Job link is required",
		"http_url": "Job link must be a valid URL",
	},
	"status":   {"oneof": "Invalid status"},
	"type":     {"oneof": "Invalid job type"},
	"priority": {"oneof": "Invalid priority"},
	"location": {"max": "Location must be less than 100 characters"},
	"source":   {"max": "Source must be less than 100 characters"},
	"contactName": {
		"max": "Contact name must be less than 100 characters",
	},
	"contactEmail": {
		"email": "Contact email must be valid",
	},
	"nextAction": {"max": "Next action must be less than 200 characters"},
	"notes":      {"max": "Notes must be less than 1000 characters"},
	"tags[]":     {"max": "Each tag must be less than 50 characters"},
	"interviews[].type": {
		"required": "Invalid interview type",
		"oneof":    "Invalid interview type",
	},
	"interviews[].date": {
		"required": "Interview date must be valid",
	},
	"offer.base":  {"max": "Offer base must be less than 50 characters"},
	"offer.bonus": {"max": "Offer bonus must be less than 50 characters"},
	"offer.currency": {
		"len": "Offer currency must be 3 characters",
	},
}

// updateMessages overrides createMessages for partial updates, where
// a field supplied as empty is reported as empty rather than missing.
var updateMessages = map[string]map[string]string{
	"position": {
		"min": "Position cannot be empty",
		"max": "Position must be between 1 and 100 characters",
	},
	"company": {
		"min": "Company cannot be empty",
		"max": "Company must be between 1 and 100 characters",
	},
	"salary.amount": {
		"required": "Salary amount cannot be empty",
		"gte":      "Salary amount must be a non-negative number",
	},
	"salary.currency": {
		"required": "Salary currency cannot be empty",
		"len":      "Currency must be 3 characters (e.g., USD)",
	},
}

// ValidateCreate checks a create payload and returns every violation,
// or nil when the payload is acceptable.
func ValidateCreate(req *dtos.CreateJobRequest) []FieldError {
	return collect(validate.Struct(req), createMessages, nil)
}

// ValidateUpdate checks a partial-update payload. Only supplied
// fields are validated; semantics for each supplied field match
// ValidateCreate.
func ValidateUpdate(req *dtos.UpdateJobRequest) []FieldError {
	return collect(validate.Struct(req), updateMessages, createMessages)
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

func collect(err error, messages, fallback map[string]map[string]string) []FieldError {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		field := fieldPath(e.Namespace())
		out = append(out, FieldError{
			Field:   field,
			Message: messageFor(field, e.Tag(), messages, fallback),
		})
	}
	return out
}

// fieldPath strips the root struct name from a validator namespace,
// leaving the JSON path of the offending field, e.g.
// "CreateJobRequest.salary.amount" -> "salary.amount".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(field, tag string, messages, fallback map[string]map[string]string) string {
	key := indexPattern.ReplaceAllString(field, "[]")
	if byTag, ok := messages[key]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	if fallback != nil {
		if byTag, ok := fallback[key]; ok {
			if msg, ok := byTag[tag]; ok {
				return msg
			}
		}
	}
	return fmt.Sprintf("%s is invalid", field)
}
