package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"artque-pipeline/internal/sticker"
)

// Profile overrides a subset of the pipeline parameters.
// Nil fields keep the base values.
type Profile struct {
	AlphaThreshold *int `json:"alpha_threshold"`
	MaxDimension   *int `json:"max_dimension"`
	CanvasSize     *int `json:"canvas_size"`
	BorderPx       *int `json:"border_px"`
}

// Load reads a JSON object of named profiles.
func Load(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var profiles map[string]Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	return profiles, nil
}

// Apply merges only the profile's non-nil fields over base.
func Apply(base sticker.Params, p Profile) sticker.Params {
	out := base
	if p.AlphaThreshold != nil {
		out.AlphaThreshold = *p.AlphaThreshold
	}
	if p.MaxDimension != nil {
		out.MaxDimension = *p.MaxDimension
	}
	if p.CanvasSize != nil {
		out.CanvasSize = *p.CanvasSize
	}
	if p.BorderPx != nil {
		out.BorderPx = *p.BorderPx
	}
	return out
}
