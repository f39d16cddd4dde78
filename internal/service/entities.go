package service

import (
	"context"
	"fmt"

	"smart_climate/internal/models"
	"smart_climate/internal/repository"
	"smart_climate/internal/schema"
)

type EntityCatalogService struct {
	entityRepo repository.EntityRepo
}

func NewEntityCatalogService(entityRepo repository.EntityRepo) *EntityCatalogService {
	return &EntityCatalogService{entityRepo: entityRepo}
}

// UpsertEntities stores each entity, stopping at the first failure.
func (s *EntityCatalogService) UpsertEntities(ctx context.Context, entities []models.Entity) error {
	for _, e := range entities {
		if err := s.entityRepo.Upsert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *EntityCatalogService) ListEntities(ctx context.Context, domain string) ([]models.Entity, error) {
	return s.entityRepo.List(ctx, domain)
}

// Catalog groups known entity ids by domain for selector options.
func (s *EntityCatalogService) Catalog(ctx context.Context) (schema.Catalog, error) {
	if s == nil || s.entityRepo == nil {
		return nil, nil
	}
	ents, err := s.entityRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load entity catalog: %w", err)
	}
	cat := make(schema.Catalog)
	for _, e := range ents {
		cat[e.Domain] = append(cat[e.Domain], e.EntityID)
	}
	return cat, nil
}
