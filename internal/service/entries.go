package service

import (
	"context"
	"fmt"

	"smart_climate/internal/models"
	"smart_climate/internal/repository"
)

type EntryService struct {
	entryRepo repository.EntryRepo
	audit     *auditor
}

func NewEntryService(entryRepo repository.EntryRepo, audit *auditor) *EntryService {
	return &EntryService{entryRepo: entryRepo, audit: audit}
}

// ListEntries returns every stored entry.
func (s *EntryService) ListEntries(ctx context.Context) ([]models.ConfigEntry, error) {
	return s.entryRepo.List(ctx, "")
}

// GetEntry returns the entry or ErrEntryNotFound.
func (s *EntryService) GetEntry(ctx context.Context, entryID string) (models.ConfigEntry, error) {
	e, err := s.entryRepo.Get(ctx, entryID)
	if err != nil {
		return models.ConfigEntry{}, err
	}
	if e == nil {
		return models.ConfigEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	return *e, nil
}

// RemoveEntry deletes the entry or returns ErrEntryNotFound.
func (s *EntryService) RemoveEntry(ctx context.Context, entryID string) error {
	ok, err := s.entryRepo.Delete(ctx, entryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	s.audit.record(ctx, models.FlowEvent{
		Type:        models.EventEntryRemoved,
		EntryID:     entryID,
		Description: "Entry removed",
	})
	return nil
}
