package render

import (
	"encoding/json"

	"github.com/matzehuels/codeshot/pkg/background"
	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/errors"
)

// Limits enforced by Validate.
const (
	MaxCodeBytes = 256 << 10
	MaxWidth     = 8192
	MaxFontSize  = 256
	MaxPadding   = 1024
)

// Request describes one screenshot. Use DefaultRequest and override
// fields; decoding JSON into a defaulted Request keeps defaults for absent
// fields while explicit zeros stay zero.
type Request struct {
	Code         string `json:"code"`
	Language     string `json:"language"`
	Theme        string `json:"theme"`
	Width        int    `json:"width"`
	FontSize     int    `json:"fontSize"`
	Padding      int    `json:"padding"`
	LineNumbers  bool   `json:"lineNumbers"`
	WindowChrome bool   `json:"windowChrome"`
	LineWrap     bool   `json:"lineWrap"`

	// Shader names a procedural background. Empty uses the theme's.
	Shader       string             `json:"shader,omitempty"`
	ShaderParams *background.Params `json:"shaderParams,omitempty"`

	// BackgroundColor replaces the theme background (#rgb, #rrggbb or
	// #rrggbbaa).
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// DefaultRequest returns a Request with every default applied.
func DefaultRequest() Request {
	return Request{
		Theme:        "dracula",
		Width:        680,
		FontSize:     14,
		Padding:      32,
		LineNumbers:  false,
		WindowChrome: true,
		LineWrap:     true,
	}
}

// Validate rejects malformed requests with INVALID_INPUT (or
// INVALID_COLOR / INVALID_THEME). Unknown theme and language names are
// not errors.
func (r Request) Validate() error {
	switch {
	case len(r.Code) > MaxCodeBytes:
		return errors.New(errors.ErrCodeInvalidInput, "code too large (max %d bytes)", MaxCodeBytes)
	case r.Width < 0 || r.Width > MaxWidth:
		return errors.New(errors.ErrCodeInvalidInput, "width must be in [0, %d], got %d", MaxWidth, r.Width)
	case r.FontSize < 0 || r.FontSize > MaxFontSize:
		return errors.New(errors.ErrCodeInvalidInput, "fontSize must be in [0, %d], got %d", MaxFontSize, r.FontSize)
	case r.Padding < 0 || r.Padding > MaxPadding:
		return errors.New(errors.ErrCodeInvalidInput, "padding must be in [0, %d], got %d", MaxPadding, r.Padding)
	}
	if err := errors.ValidateLanguageID(r.Language); err != nil {
		return err
	}
	if err := errors.ValidateThemeName(r.Theme); err != nil {
		return err
	}
	if r.BackgroundColor != "" {
		if err := errors.ValidateHexColor(r.BackgroundColor); err != nil {
			return err
		}
	}
	return nil
}

// CacheKey returns a stable hash of the request.
func (r Request) CacheKey() string {
	data, _ := json.Marshal(r)
	return cache.Hash(data)
}
