// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field failures in services and returns them as one
VALIDATION_ERROR.

	validator := &validate.Validator{}
	validator.UUID("winner_id", winnerID).UUID("loser_id", loserID)
	if err := validator.Err(); err != nil {
		return err
	}

A Validator is single use and not safe for concurrent use.
*/
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// handlePattern allows letters, digits, underscores and single inner dots.
var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

// ErrInvalidJSON is returned when a request body does not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates [apperr.FieldError] values.
type Validator struct {
	failures []apperr.FieldError
}

func (v *Validator) fail(field, message string) *Validator {
	v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	return v
}

// Required rejects blank values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.fail(field, "This field is required")
	}
	return v
}

// MinLen rejects values shorter than min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		return v.fail(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// MaxLen rejects values longer than max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		return v.fail(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Email accepts a bare address only; display-name forms such as
// "Rei <rei@example.com>" are rejected.
func (v *Validator) Email(field, value string) *Validator {
	parsed, err := mail.ParseAddress(value)
	if err != nil || parsed.Address != value {
		return v.fail(field, "Must be a valid email address")
	}
	return v
}

// Username accepts public handles such as "rei_01.a".
func (v *Validator) Username(field, value string) *Validator {
	if !handlePattern.MatchString(value) {
		return v.fail(field, "Only letters, digits, underscores and inner dots are allowed")
	}
	return v
}

// HTTPURL accepts absolute http and https URLs with a host.
func (v *Validator) HTTPURL(field, value string) *Validator {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return v.fail(field, "Must be an absolute http(s) URL")
	}
	return v
}

// UUID accepts the canonical 36-character form in either case.
func (v *Validator) UUID(field, value string) *Validator {
	if len(value) != 36 || !uuid.Valid(value) {
		return v.fail(field, "Must be a valid UUID")
	}
	return v
}

// OneOf accepts only the listed values.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		return v.fail(field, "Must be one of: "+strings.Join(allowed, ", "))
	}
	return v
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		return v.fail(field, message)
	}
	return v
}

// HasErrors reports whether any check failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err returns nil, or one VALIDATION_ERROR listing every failure in order.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.failures...)
}

// RequiredError builds a single-field VALIDATION_ERROR.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
