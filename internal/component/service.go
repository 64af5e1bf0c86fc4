package component

import (
	"context"

	"cms-admin/internal/domain"
	apiError "cms-admin/internal/errors"

	"github.com/rs/zerolog/log"
)

const cacheName = "components"

// Cache is the versioned key cache from the redis package.
type Cache interface {
	Key(ctx context.Context, name string) (string, error)
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	IncrementVersion(ctx context.Context, name string) error
}

type Service interface {
	ListComponents(ctx context.Context) ([]domain.Component, error)
	SaveComponents(ctx context.Context, components []domain.Component) error
}

type ServiceImpl struct {
	repo  ComponentRepository
	cache Cache
}

func NewService(repo ComponentRepository, cache Cache) Service {
	return &ServiceImpl{repo: repo, cache: cache}
}

// ListComponents returns every catalog row. Cache failures fall through to
// the database.
func (s *ServiceImpl) ListComponents(ctx context.Context) ([]domain.Component, error) {
	key, err := s.cache.Key(ctx, cacheName)
	if err != nil {
		log.Warn().Err(err).Msg("component cache version unavailable")
	}

	if key != "" {
		var cached []domain.Component
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("component cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	components, err := s.repo.List(ctx)
	if err != nil {
		return nil, apiError.Internal(err)
	}
	if components == nil {
		components = []domain.Component{}
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, components); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("component cache write failed")
		}
	}
	return components, nil
}

// SaveComponents upserts catalog rows by type and invalidates the cache.
func (s *ServiceImpl) SaveComponents(ctx context.Context, components []domain.Component) error {
	for i := range components {
		if err := s.repo.Upsert(ctx, &components[i]); err != nil {
			return apiError.Internal(err)
		}
	}
	if err := s.cache.IncrementVersion(ctx, cacheName); err != nil {
		log.Warn().Err(err).Msg("component cache invalidation failed")
	}
	return nil
}
