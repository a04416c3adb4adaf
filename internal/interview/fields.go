package interview

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/talentscout/screener/internal/session"
)

// ValidationError carries the user-facing correction message for a malformed
// field value. The session is never mutated when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var digitRun = regexp.MustCompile(`\d+`)

const maxPhoneLength = 15

// storeField validates the raw input for the field and stores the normalized
// value in the session. A *ValidationError means the candidate should be
// re-prompted; any other error is a handler bug.
func storeField(s *session.Session, f session.Field, input string) error {
	trimmed := strings.TrimSpace(input)

	switch f {
	case session.FieldFullName:
		words := len(strings.Fields(trimmed))
		if words < 1 || words > 5 {
			return &ValidationError{Message: "Please provide your full name (1-5 words)."}
		}
		return s.SetString(f, trimmed)

	case session.FieldEmail:
		if !strings.Contains(trimmed, "@") || !strings.Contains(trimmed, ".") {
			return &ValidationError{
				Message: "That doesn't look like a valid email address. Please provide a valid email.",
			}
		}
		return s.SetString(f, trimmed)

	case session.FieldPhone:
		if !strings.ContainsAny(trimmed, "0123456789") || len(trimmed) > maxPhoneLength {
			return &ValidationError{
				Message: "That doesn't look like a valid phone number. Please provide a phone number with digits (at most 15 characters).",
			}
		}
		return s.SetString(f, trimmed)

	case session.FieldExperienceYears:
		return s.SetExperienceYears(parseYears(trimmed))

	case session.FieldDesiredPositions, session.FieldLocation:
		return s.SetString(f, trimmed)

	case session.FieldTechStack:
		techs := splitTechStack(trimmed)
		if len(techs) == 0 {
			return &ValidationError{
				Message: "Please list at least one technology, separated by commas.",
			}
		}
		return s.SetTechStack(techs)

	default:
		return fmt.Errorf("unknown field %q", f)
	}
}

// parseYears converts the input to an integer, falling back to the first run
// of digits ("5 years" -> 5) and finally to zero.
func parseYears(input string) int {
	if years, err := strconv.Atoi(input); err == nil {
		return years
	}
	if digits := digitRun.FindString(input); digits != "" {
		if years, err := strconv.Atoi(digits); err == nil {
			return years
		}
	}
	return 0
}

func splitTechStack(input string) []string {
	var techs []string
	for _, tech := range strings.Split(input, ",") {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			continue
		}
		techs = append(techs, tech)
	}
	return techs
}
