package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/settings"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemorySettingsStore implements settings.Repository
type InMemorySettingsStore struct {
	*InMemoryStore[*settings.Setting]
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		InMemoryStore: NewInMemoryStore[*settings.Setting](),
	}
}

func copySetting(s *settings.Setting) *settings.Setting {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func (s *InMemorySettingsStore) Get(ctx context.Context, key string) (*settings.Setting, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, it *settings.Setting, _ interface{}) bool {
		return it.Key == key && it.CompanyID == types.GetCompanyID(ctx)
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewErrorf("setting %s not found", key).
			WithHint("Setting not found").
			Mark(ierr.ErrNotFound)
	}
	return copySetting(items[0]), nil
}

func (s *InMemorySettingsStore) List(ctx context.Context) ([]*settings.Setting, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, it *settings.Setting, _ interface{}) bool {
		return it.CompanyID == types.GetCompanyID(ctx)
	}, func(a, b *settings.Setting) bool {
		return a.Key < b.Key
	})
	if err != nil {
		return nil, err
	}
	out := make([]*settings.Setting, 0, len(items))
	for _, it := range items {
		out = append(out, copySetting(it))
	}
	return out, nil
}

func (s *InMemorySettingsStore) Upsert(ctx context.Context, setting *settings.Setting) error {
	existing, err := s.Get(ctx, setting.Key)
	if err != nil {
		if ierr.IsNotFound(err) {
			return s.InMemoryStore.Create(ctx, setting.ID, copySetting(setting))
		}
		return err
	}

	existing.Value = setting.Value
	existing.UpdatedAt = setting.UpdatedAt
	existing.UpdatedBy = setting.UpdatedBy
	return s.InMemoryStore.Update(ctx, existing.ID, existing)
}
