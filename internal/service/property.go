package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/rs/zerolog"
)

// PropertyStore is the persistence PropertyService reads and writes through.
type PropertyStore interface {
	GetAllProperties(ctx context.Context, opts model.FilterOptions, limit int) ([]model.PropertyListing, error)
	AddProperty(ctx context.Context, p model.NewProperty) (*model.Property, error)
}

// SearchCache caches search results. Get returns the key its lookup resolved
// to, and Set must be given that same key.
type SearchCache interface {
	Get(ctx context.Context, opts model.FilterOptions, limit int) (string, []model.PropertyListing, bool, error)
	Set(ctx context.Context, key string, listings []model.PropertyListing) error
	Invalidate(ctx context.Context) error
}

// PropertyService serves property search and creation.
type PropertyService struct {
	store  PropertyStore
	cache  SearchCache
	limits limits
	logger *zerolog.Logger
}

// Search validates opts and returns matching listings ordered by price.
// Cache failures are logged and fall through to the database.
func (s *PropertyService) Search(ctx context.Context, opts model.FilterOptions, limit int) ([]model.PropertyListing, error) {
	if err := validation.Check(&opts); err != nil {
		return nil, err
	}

	limit = s.limits.clamp(limit)
	log := logger.FromContext(ctx, s.logger)

	var cacheKey string
	if s.cache != nil {
		key, listings, ok, err := s.cache.Get(ctx, opts, limit)
		cacheKey = key
		if err != nil {
			log.Warn().Err(err).Msg("search cache read failed")
		} else if ok {
			return listings, nil
		}
	}

	listings, err := s.store.GetAllProperties(ctx, opts, limit)
	if err != nil {
		return nil, err
	}

	// nil means the legacy read path swallowed a failure; don't cache it.
	if cacheKey != "" && listings != nil {
		if err := s.cache.Set(ctx, cacheKey, listings); err != nil {
			log.Warn().Err(err).Msg("search cache write failed")
		}
	}

	return listings, nil
}

// Create validates and stores a new property.
func (s *PropertyService) Create(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	if err := validation.Check(&p); err != nil {
		return nil, err
	}

	property, err := s.store.AddProperty(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.FromContext(ctx, s.logger).Warn().Err(err).Msg("search cache invalidation failed")
		}
	}

	return property, nil
}
