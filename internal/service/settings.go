package service

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/cache"
	"github.com/tagihin/tagihin/internal/domain/settings"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

const settingsCacheExpiry = 30 * time.Minute

// SettingsService manages company-scoped configuration entries.
type SettingsService interface {
	// GetAll returns every setting for the current company
	GetAll(ctx context.Context) (*dto.SettingsResponse, error)

	// GetValue returns a setting value, falling back to defaultValue when
	// the key has never been set
	GetValue(ctx context.Context, key, defaultValue string) (string, error)

	// Update upserts the given settings for the current company
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{ServiceParams: params}
}

func (s *settingsService) GetAll(ctx context.Context) (*dto.SettingsResponse, error) {
	items, err := s.SettingsRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToSettingsResponse(items), nil
}

func (s *settingsService) GetValue(ctx context.Context, key, defaultValue string) (string, error) {
	cacheKey := cache.GenerateKey(cache.PrefixSettings, types.GetCompanyID(ctx), key)
	if v, ok := s.Cache.Get(ctx, cacheKey); ok {
		if value, ok := v.(string); ok {
			return value, nil
		}
	}

	setting, err := s.SettingsRepo.Get(ctx, key)
	if err != nil {
		if ierr.IsNotFound(err) {
			return defaultValue, nil
		}
		return "", err
	}

	s.Cache.Set(ctx, cacheKey, setting.Value, settingsCacheExpiry)
	return setting.Value, nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for key, value := range req.Settings {
		setting := &settings.Setting{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTING),
			Key:       key,
			Value:     value,
			BaseModel: types.GetDefaultBaseModel(ctx),
		}
		if err := s.SettingsRepo.Upsert(ctx, setting); err != nil {
			return nil, err
		}
		s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixSettings, types.GetCompanyID(ctx), key))
	}

	return s.GetAll(ctx)
}
