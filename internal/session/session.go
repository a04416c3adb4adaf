package session

import (
	"fmt"
	"strings"
)

// Stage is the coarse phase of a screening interview. Transitions are
// forward-only: GATHERING_INFO -> QA -> CONCLUDED.
type Stage int

const (
	StageGatheringInfo Stage = iota
	StageQA
	StageConcluded
)

func (s Stage) String() string {
	switch s {
	case StageGatheringInfo:
		return "GATHERING_INFO"
	case StageQA:
		return "QA"
	case StageConcluded:
		return "CONCLUDED"
	default:
		return "UNKNOWN"
	}
}

// Field is one named piece of candidate profile data collected sequentially.
type Field string

const (
	FieldFullName         Field = "full_name"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldExperienceYears  Field = "experience_years"
	FieldDesiredPositions Field = "desired_positions"
	FieldLocation         Field = "location"
	FieldTechStack        Field = "tech_stack"
)

var fieldOrder = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldExperienceYears,
	FieldDesiredPositions,
	FieldLocation,
	FieldTechStack,
}

// FieldOrder returns the fixed collection order of profile fields.
func FieldOrder() []Field {
	order := make([]Field, len(fieldOrder))
	copy(order, fieldOrder)
	return order
}

// Label returns the human-facing name of the field ("full name", "tech stack").
func (f Field) Label() string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// QAPair is a committed question/answer record used for final scoring.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Profile holds the validated candidate information.
type Profile struct {
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	ExperienceYears  int      `json:"experience_years"`
	DesiredPositions string   `json:"desired_positions"`
	Location         string   `json:"location"`
	TechStack        []string `json:"tech_stack"`
}

// Session is the single mutable aggregate for one interview. It is owned by
// the shell and mutated only through the handlers; it is not safe for
// concurrent use and is never shared between candidates.
type Session struct {
	stage   Stage
	profile Profile
	filled  map[Field]bool

	queue   []string
	history []string
	pairs   []QAPair
	current string
}

// New returns a fresh session at the start of the profile-collection stage.
func New() *Session {
	return &Session{
		stage:  StageGatheringInfo,
		filled: make(map[Field]bool, len(fieldOrder)),
	}
}

func (s *Session) Stage() Stage { return s.stage }

// CurrentField returns the first field, in collection order, that has not
// been filled yet. The second return is false once the profile is complete.
func (s *Session) CurrentField() (Field, bool) {
	for _, f := range fieldOrder {
		if !s.filled[f] {
			return f, true
		}
	}
	return "", false
}

// ProfileComplete reports whether all profile fields have been collected.
func (s *Session) ProfileComplete() bool {
	_, pending := s.CurrentField()
	return !pending
}

// Profile returns a copy of the collected candidate information.
func (s *Session) Profile() Profile {
	p := s.profile
	if p.TechStack != nil {
		p.TechStack = append([]string(nil), p.TechStack...)
	}
	return p
}

// FilledCount returns the number of profile fields collected so far.
func (s *Session) FilledCount() int { return len(s.filled) }

func (s *Session) mark(f Field) error {
	if s.stage != StageGatheringInfo {
		return fmt.Errorf("cannot set field %q in stage %s", f, s.stage)
	}
	current, pending := s.CurrentField()
	if !pending {
		return fmt.Errorf("profile is already complete")
	}
	if f != current {
		return fmt.Errorf("field %q is not the current field (expected %q)", f, current)
	}
	s.filled[f] = true
	return nil
}

// SetString stores a string-valued profile field. Fields are set at most once
// and only in collection order.
func (s *Session) SetString(f Field, value string) error {
	if err := s.mark(f); err != nil {
		return err
	}
	switch f {
	case FieldFullName:
		s.profile.FullName = value
	case FieldEmail:
		s.profile.Email = value
	case FieldPhone:
		s.profile.Phone = value
	case FieldDesiredPositions:
		s.profile.DesiredPositions = value
	case FieldLocation:
		s.profile.Location = value
	default:
		delete(s.filled, f)
		return fmt.Errorf("field %q is not string-valued", f)
	}
	return nil
}

// SetExperienceYears stores the experience_years field.
func (s *Session) SetExperienceYears(years int) error {
	if err := s.mark(FieldExperienceYears); err != nil {
		return err
	}
	s.profile.ExperienceYears = years
	return nil
}

// SetTechStack stores the tech_stack field.
func (s *Session) SetTechStack(techs []string) error {
	if err := s.mark(FieldTechStack); err != nil {
		return err
	}
	s.profile.TechStack = append([]string(nil), techs...)
	return nil
}

// LoadQuestions replaces the pending question queue and clears the question
// history and answer transcript. Called once, when the tech stack is stored.
func (s *Session) LoadQuestions(questions []string) {
	s.queue = append([]string(nil), questions...)
	s.history = nil
	s.pairs = nil
	s.current = ""
}

// AdvanceToQA moves the session into the QA stage and asks the first queued
// question. The profile must be complete and the queue non-empty.
func (s *Session) AdvanceToQA() (string, error) {
	if s.stage != StageGatheringInfo {
		return "", fmt.Errorf("cannot start QA from stage %s", s.stage)
	}
	if !s.ProfileComplete() {
		return "", fmt.Errorf("profile is incomplete")
	}
	if len(s.queue) == 0 {
		return "", fmt.Errorf("question queue is empty")
	}
	s.stage = StageQA
	question, _ := s.PopQuestion()
	return question, nil
}

// CurrentQuestion returns the question awaiting an answer, or an empty string
// when none is pending.
func (s *Session) CurrentQuestion() string { return s.current }

// QueueLen returns the number of questions still pending.
func (s *Session) QueueLen() int { return len(s.queue) }

// History returns a copy of the questions asked so far.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Pairs returns a copy of the committed question/answer transcript.
func (s *Session) Pairs() []QAPair {
	return append([]QAPair(nil), s.pairs...)
}

// RecordAnswer commits the answer to the current question.
func (s *Session) RecordAnswer(answer string) error {
	if s.stage != StageQA {
		return fmt.Errorf("cannot record an answer in stage %s", s.stage)
	}
	if s.current == "" {
		return fmt.Errorf("no question is pending")
	}
	s.pairs = append(s.pairs, QAPair{Question: s.current, Answer: answer})
	s.current = ""
	return nil
}

// PopQuestion takes the next queued question, appends it to the history and
// makes it current. The second return is false when the queue is exhausted.
func (s *Session) PopQuestion() (string, bool) {
	if len(s.queue) == 0 {
		s.current = ""
		return "", false
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	s.history = append(s.history, next)
	s.current = next
	return next, true
}

// Conclude moves the session into its terminal stage.
func (s *Session) Conclude() error {
	if s.stage != StageQA {
		return fmt.Errorf("cannot conclude from stage %s", s.stage)
	}
	s.stage = StageConcluded
	s.current = ""
	return nil
}

// Reset restores the session to its initial state for a new candidate.
func (s *Session) Reset() {
	*s = *New()
}
