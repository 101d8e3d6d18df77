package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/examhub/examhub/internal/dto"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
)

// taxonomyCacheTTL bounds staleness for cached single-entry reads.
const taxonomyCacheTTL = 5 * time.Minute

// TaxonomyStore is the persistence surface the taxonomy service needs.
type TaxonomyStore[T model.Taxonomy] interface {
	Create(ctx context.Context, entry *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, limit, offset int) ([]T, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// Cache is a string key/value cache with TTL. A cache miss returns an empty
// string and no error. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TaxonomyService serves CRUD for one exam classification entity. The five
// entities share columns and behavior, so one generic implementation is
// instantiated per entity. Single-entry reads go through the cache;
// mutations invalidate the affected key.
type TaxonomyService[T model.Taxonomy, PT model.TaxonomyPtr[T]] struct {
	store  TaxonomyStore[T]
	cache  Cache
	entity string
}

func NewTaxonomyService[T model.Taxonomy, PT model.TaxonomyPtr[T]](store TaxonomyStore[T], cache Cache, entity string) *TaxonomyService[T, PT] {
	return &TaxonomyService[T, PT]{store: store, cache: cache, entity: entity}
}

func (s *TaxonomyService[T, PT]) toResponse(entry *T) dto.TaxonomyResponse {
	pt := PT(entry)
	meta := pt.Meta()
	fields := pt.Fields()
	return dto.TaxonomyResponse{
		ID:          meta.ID,
		Name:        fields.Name,
		Description: fields.Description,
		IsActivated: fields.IsActivated,
		CreatedAt:   meta.CreatedAt,
		UpdatedAt:   meta.UpdatedAt,
	}
}

func (s *TaxonomyService[T, PT]) cacheKey(id uint) string {
	return fmt.Sprintf("taxonomy:%s:%d", s.entity, id)
}

// invalidate drops the cached entry. Cache failures are logged and ignored;
// the next read falls through to the store.
func (s *TaxonomyService[T, PT]) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate taxonomy cache").
			String("entity", s.entity).
			Uint("id", id).
			Err(err).
			Log()
	}
}

func (s *TaxonomyService[T, PT]) cachedResponse(ctx context.Context, id uint) *dto.TaxonomyResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil || raw == "" {
		return nil
	}
	var resp dto.TaxonomyResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *TaxonomyService[T, PT]) storeResponse(ctx context.Context, id uint, resp *dto.TaxonomyResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(id), string(raw), taxonomyCacheTTL); err != nil {
		logger.WarnWithContext(ctx, "Failed to cache taxonomy entry").
			String("entity", s.entity).
			Uint("id", id).
			Err(err).
			Log()
	}
}

func (s *TaxonomyService[T, PT]) Create(ctx context.Context, req *dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Creating taxonomy entry").
		String("entity", s.entity).
		String("name", req.Name).
		Log()

	var entry T
	*PT(&entry).Fields() = model.TaxonomyFields{
		Name:        req.Name,
		Description: req.Description,
		IsActivated: true,
	}

	if err := s.store.Create(ctx, &entry); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create taxonomy entry").
			String("entity", s.entity).
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	resp := s.toResponse(&entry)
	return &resp, nil
}

func (s *TaxonomyService[T, PT]) Get(ctx context.Context, id uint) (*dto.TaxonomyResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Get")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if resp := s.cachedResponse(ctx, id); resp != nil {
		logger.DebugWithContext(ctx, "Taxonomy cache hit").
			String("entity", s.entity).
			Uint("id", id).
			Log()
		return resp, nil
	}

	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "Taxonomy entry not found").
			String("entity", s.entity).
			Uint("id", id).
			Log()
		return nil, domainerrors.ErrNotFound
	}

	resp := s.toResponse(entry)
	s.storeResponse(ctx, id, &resp)
	return &resp, nil
}

func (s *TaxonomyService[T, PT]) List(ctx context.Context, limit, offset int) ([]dto.TaxonomyResponse, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	entries, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list taxonomy entries").
			String("entity", s.entity).
			Err(err).
			Log()
		return nil, 0, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	responses := make([]dto.TaxonomyResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, s.toResponse(&entries[i]))
	}

	return responses, total, nil
}

func (s *TaxonomyService[T, PT]) Update(ctx context.Context, id uint, req *dto.UpdateTaxonomyRequest) (*dto.TaxonomyResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Updating taxonomy entry").
		String("entity", s.entity).
		Uint("id", id).
		Log()

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.IsActivated != nil {
		fields["is_activated"] = *req.IsActivated
	}

	if len(fields) > 0 {
		if err := s.store.Update(ctx, id, fields); err != nil {
			logger.WarnWithContext(ctx, "Taxonomy entry update failed").
				String("entity", s.entity).
				Uint("id", id).
				Err(err).
				Log()
			return nil, domainerrors.ErrNotFound
		}
		s.invalidate(ctx, id)
	}

	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.ErrNotFound
	}

	resp := s.toResponse(entry)
	return &resp, nil
}

func (s *TaxonomyService[T, PT]) Delete(ctx context.Context, id uint) (string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.store.Delete(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "Taxonomy entry delete failed").
			String("entity", s.entity).
			Uint("id", id).
			Err(err).
			Log()
		return "", domainerrors.ErrNotFound
	}

	s.invalidate(ctx, id)

	logger.InfoWithContext(ctx, "Taxonomy entry deleted successfully").
		String("entity", s.entity).
		Uint("id", id).
		Log()

	return "success", nil
}
