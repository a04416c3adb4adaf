package interview

import (
	"errors"
	"testing"

	"github.com/talentscout/screener/internal/session"
)

func TestParseYears(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"5", 5},
		{"5 years", 5},
		{"about 12 years", 12},
		{"3-5 years", 3},
		{"none", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := parseYears(tc.input); got != tc.want {
			t.Errorf("parseYears(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestSplitTechStack(t *testing.T) {
	got := splitTechStack("Python, Go , SQL,,")
	want := []string{"Python", "Go", "SQL"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if techs := splitTechStack(" , ,"); techs != nil {
		t.Fatalf("expected no technologies, got %v", techs)
	}
}

func TestStoreFieldValidation(t *testing.T) {
	cases := []struct {
		name  string
		field session.Field
		input string
		valid bool
	}{
		{"name ok", session.FieldFullName, "John Smith", true},
		{"name too long", session.FieldFullName, "one two three four five six", false},
		{"name empty", session.FieldFullName, "   ", false},
		{"email ok", session.FieldEmail, "john@example.com", true},
		{"email missing at", session.FieldEmail, "not-an-email", false},
		{"phone ok", session.FieldPhone, "+1 555 0100", true},
		{"phone no digits", session.FieldPhone, "call me maybe", false},
		{"phone too long", session.FieldPhone, "1234567890123456", false},
		{"tech stack ok", session.FieldTechStack, "Go, SQL", true},
		{"tech stack empty", session.FieldTechStack, " , ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sessionAt(t, tc.field)
			err := storeField(s, tc.field, tc.input)

			if tc.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if vErr.Message == "" {
				t.Fatal("validation error carries no message")
			}
			// Rejected input must not consume the field.
			if current, _ := s.CurrentField(); current != tc.field {
				t.Fatalf("field advanced to %q after rejected input", current)
			}
		})
	}
}

func TestStoreFieldNormalizesYears(t *testing.T) {
	s := sessionAt(t, session.FieldExperienceYears)
	if err := storeField(s, session.FieldExperienceYears, "5 years"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Profile().ExperienceYears; got != 5 {
		t.Fatalf("expected 5 years, got %d", got)
	}
}

// sessionAt returns a session whose next expected field is the given one.
func sessionAt(t *testing.T, field session.Field) *session.Session {
	t.Helper()

	s := session.New()
	for _, f := range session.FieldOrder() {
		if f == field {
			return s
		}
		var err error
		switch f {
		case session.FieldExperienceYears:
			err = s.SetExperienceYears(3)
		case session.FieldTechStack:
			err = s.SetTechStack([]string{"Go"})
		default:
			err = s.SetString(f, "placeholder")
		}
		if err != nil {
			t.Fatalf("filling %s: %v", f, err)
		}
	}
	t.Fatalf("field %q not reached", field)
	return nil
}
