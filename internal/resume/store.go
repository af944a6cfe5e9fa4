// Package resume keeps the most recently uploaded resume in memory.
package resume

import (
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"job-aggregator/internal/models"
)

// PlaceholderContent stands in for parsed resume text; files are not parsed.
const PlaceholderContent = "Mock resume content"

var ErrNotFound = errors.New("no resume found")

// Store holds a single record. Save replaces it atomically, so a concurrent
// Get sees either the old record or the new one.
type Store struct {
	current atomic.Pointer[models.ResumeRecord]
}

func NewStore() *Store {
	return &Store{}
}

// NewRecord builds the record for a file uploaded at uploadedAt.
func NewRecord(fileName string, uploadedAt time.Time) models.ResumeRecord {
	return models.ResumeRecord{
		ID:         strconv.FormatInt(uploadedAt.UnixMilli(), 10),
		FileName:   fileName,
		UploadDate: uploadedAt.UTC(),
		Content:    PlaceholderContent,
	}
}

func (s *Store) Save(rec models.ResumeRecord) models.ResumeRecord {
	s.current.Store(&rec)
	return rec
}

func (s *Store) Get() (models.ResumeRecord, error) {
	rec := s.current.Load()
	if rec == nil {
		return models.ResumeRecord{}, ErrNotFound
	}
	return *rec, nil
}
