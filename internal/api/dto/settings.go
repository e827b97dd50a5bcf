package dto

import (
	"github.com/tagihin/tagihin/internal/validator"
	"github.com/tagihin/tagihin/internal/domain/settings"
)

// UpdateSettingsRequest upserts a batch of company settings
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1"`
}

// Validate validates the settings update request
func (r *UpdateSettingsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// SettingsResponse is a flat key/value view of a company's settings
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}

// ToSettingsResponse converts a list of settings to the response shape
func ToSettingsResponse(items []*settings.Setting) *SettingsResponse {
	out := make(map[string]string, len(items))
	for _, s := range items {
		out[s.Key] = s.Value
	}
	return &SettingsResponse{Settings: out}
}
