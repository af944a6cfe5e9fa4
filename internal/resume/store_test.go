package resume

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStoreEmpty(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreOverwrites(t *testing.T) {
	s := NewStore()
	first := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	s.Save(NewRecord("cv-v1.pdf", first))
	s.Save(NewRecord("cv-v2.pdf", first.Add(time.Minute)))

	rec, err := s.Get()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.FileName != "cv-v2.pdf" {
		t.Errorf("Expected latest upload, got %q", rec.FileName)
	}
	if rec.ID != fmt.Sprint(first.Add(time.Minute).UnixMilli()) {
		t.Errorf("Expected millisecond id, got %q", rec.ID)
	}
	if rec.Content != PlaceholderContent {
		t.Errorf("Unexpected content %q", rec.Content)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Save(NewRecord(fmt.Sprintf("cv-%d.pdf", i), time.Now()))
		}(i)
		go func() {
			defer wg.Done()
			if rec, err := s.Get(); err == nil && rec.FileName == "" {
				t.Error("Observed a record without a file name")
			}
		}()
	}
	wg.Wait()

	if _, err := s.Get(); err != nil {
		t.Errorf("Expected a record after uploads, got %v", err)
	}
}
