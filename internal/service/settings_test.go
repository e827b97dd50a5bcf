package service

import (
	"testing"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/settings"
	"github.com/tagihin/tagihin/internal/testutil"
	"github.com/tagihin/tagihin/internal/types"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SettingsService
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSettingsService(newServiceParams(&s.BaseServiceTestSuite))
}

func (s *SettingsServiceSuite) TestGetValueFallsBackToDefault() {
	value, err := s.service.GetValue(s.GetContext(), types.SettingKeyInvoicePrefix, types.DocumentPrefixInvoice)
	s.NoError(err)
	s.Equal("INV", value)
}

func (s *SettingsServiceSuite) TestUpdateAndGetAll() {
	resp, err := s.service.Update(s.GetContext(), &dto.UpdateSettingsRequest{
		Settings: map[string]string{
			types.SettingKeyInvoicePrefix: "FAK",
			types.SettingKeyCompanyName:   "PT Tagihin",
		},
	})
	s.NoError(err)
	s.Equal("FAK", resp.Settings[types.SettingKeyInvoicePrefix])
	s.Equal("PT Tagihin", resp.Settings[types.SettingKeyCompanyName])

	all, err := s.service.GetAll(s.GetContext())
	s.NoError(err)
	s.Len(all.Settings, 2)
}

func (s *SettingsServiceSuite) TestUpdateOverwritesExisting() {
	_, err := s.service.Update(s.GetContext(), &dto.UpdateSettingsRequest{
		Settings: map[string]string{types.SettingKeyCompanyName: "PT Tagihin"},
	})
	s.NoError(err)

	_, err = s.service.Update(s.GetContext(), &dto.UpdateSettingsRequest{
		Settings: map[string]string{types.SettingKeyCompanyName: "PT Tagihin Sejahtera"},
	})
	s.NoError(err)

	value, err := s.service.GetValue(s.GetContext(), types.SettingKeyCompanyName, "")
	s.NoError(err)
	s.Equal("PT Tagihin Sejahtera", value)

	all, err := s.service.GetAll(s.GetContext())
	s.NoError(err)
	s.Len(all.Settings, 1)
}

func (s *SettingsServiceSuite) TestUpdateEmptyRequest() {
	_, err := s.service.Update(s.GetContext(), &dto.UpdateSettingsRequest{})
	s.Error(err)
}

func (s *SettingsServiceSuite) TestGetValueUsesCache() {
	ctx := s.GetContext()
	_, err := s.service.Update(ctx, &dto.UpdateSettingsRequest{
		Settings: map[string]string{types.SettingKeyQuotationPrefix: "PEN"},
	})
	s.NoError(err)

	value, err := s.service.GetValue(ctx, types.SettingKeyQuotationPrefix, "QUO")
	s.NoError(err)
	s.Equal("PEN", value)

	// Mutating the store behind the service's back is not visible until
	// the cache entry is invalidated by an Update.
	s.NoError(s.GetStores().SettingsRepo.Upsert(ctx, &settings.Setting{
		ID:        "setting_stale",
		Key:       types.SettingKeyQuotationPrefix,
		Value:     "XXX",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}))

	value, err = s.service.GetValue(ctx, types.SettingKeyQuotationPrefix, "QUO")
	s.NoError(err)
	s.Equal("PEN", value)

	_, err = s.service.Update(ctx, &dto.UpdateSettingsRequest{
		Settings: map[string]string{types.SettingKeyQuotationPrefix: "QTN"},
	})
	s.NoError(err)

	value, err = s.service.GetValue(ctx, types.SettingKeyQuotationPrefix, "QUO")
	s.NoError(err)
	s.Equal("QTN", value)
}

func (s *SettingsServiceSuite) TestSettingsAreCompanyScoped() {
	ctx := s.GetContext()
	_, err := s.service.Update(ctx, &dto.UpdateSettingsRequest{
		Settings: map[string]string{types.SettingKeyCompanyName: "PT Tagihin"},
	})
	s.NoError(err)

	otherCtx := types.SetCompanyID(ctx, "company_other")
	all, err := s.service.GetAll(otherCtx)
	s.NoError(err)
	s.Empty(all.Settings)
}
