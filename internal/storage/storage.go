// Package storage persists concluded interviews as a flat, append-only JSON
// list of candidate records.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/session"
)

const defaultPath = "candidates.json"

// CandidateRecord is the terminal snapshot written once per concluded
// interview.
type CandidateRecord struct {
	ID          string           `json:"id"`
	SubmittedAt string           `json:"submitted_at"`
	Profile     session.Profile  `json:"profile"`
	QAPairs     []session.QAPair `json:"qa_pairs,omitempty"`
	Evaluations []ai.Evaluation  `json:"evaluations,omitempty"`
}

// Store appends candidate records to a JSON file.
type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
}

func New(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = defaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger, now: time.Now}
}

// Append adds the record to the stored list, assigning an ID and submission
// timestamp when absent. An unreadable or corrupt existing file is replaced
// rather than aborting the conclusion flow.
func (s *Store) Append(record CandidateRecord) error {
	records, err := s.Load()
	if err != nil {
		s.logger.Warn("could not read existing candidate records, starting fresh",
			zap.String("path", s.path),
			zap.Error(err),
		)
		records = nil
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SubmittedAt == "" {
		record.SubmittedAt = s.now().Format(time.RFC3339)
	}

	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal candidate records: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write candidate records to %s: %w", s.path, err)
	}

	s.logger.Info("candidate record saved",
		zap.String("path", s.path),
		zap.String("candidate_id", record.ID),
		zap.Int("total", len(records)),
	)

	return nil
}

// Load returns all stored candidate records. A missing file is an empty list.
func (s *Store) Load() ([]CandidateRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read candidate records from %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var records []CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse candidate records in %s: %w", s.path, err)
	}

	return records, nil
}
