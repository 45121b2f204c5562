package service

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Theme is a stored preference with its colors resolved for display.
type Theme struct {
	domain.ThemePreference
	Colors map[string]string `json:"colors"` // HSL, keyed by color slot
}

// ThemeService persists palette and color choices per user.
type ThemeService interface {
	GetTheme(ctx context.Context, userID primitive.ObjectID) (*Theme, error)
	// SelectPalette switches palette and drops every custom color.
	SelectPalette(ctx context.Context, userID primitive.ObjectID, paletteKey string) (*Theme, error)
	SetMode(ctx context.Context, userID primitive.ObjectID, mode domain.ThemeMode) (*Theme, error)
	// UpdateColor overrides one slot of the current palette in the given mode.
	UpdateColor(ctx context.Context, userID primitive.ObjectID, mode domain.ThemeMode, colorKey, hex string) (*Theme, error)
	ResetColors(ctx context.Context, userID primitive.ObjectID) (*Theme, error)
}

type themeService struct {
	themeRepo repository.ThemeRepository
}

// NewThemeService creates a new instance of themeService.
func NewThemeService(themeRepo repository.ThemeRepository) ThemeService {
	return &themeService{themeRepo: themeRepo}
}

func (s *themeService) load(ctx context.Context, userID primitive.ObjectID) (*domain.ThemePreference, error) {
	pref, err := s.themeRepo.GetByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			def := domain.DefaultThemePreference(userID)
			return &def, nil
		}
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if pref.CustomColors == nil {
		pref.CustomColors = map[string]string{}
	}
	return pref, nil
}

func resolveTheme(pref *domain.ThemePreference) (*Theme, error) {
	colors, err := pref.ResolveColors()
	if err != nil {
		return nil, err
	}
	return &Theme{ThemePreference: *pref, Colors: colors}, nil
}

// update loads the preference, applies change and saves it.
func (s *themeService) update(ctx context.Context, userID primitive.ObjectID, change func(*domain.ThemePreference) error) (*Theme, error) {
	pref, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := change(pref); err != nil {
		return nil, err
	}
	if err := s.themeRepo.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("save theme: %w", err)
	}
	return resolveTheme(pref)
}

func (s *themeService) GetTheme(ctx context.Context, userID primitive.ObjectID) (*Theme, error) {
	pref, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return resolveTheme(pref)
}

func (s *themeService) SelectPalette(ctx context.Context, userID primitive.ObjectID, paletteKey string) (*Theme, error) {
	if _, ok := domain.Palettes[paletteKey]; !ok {
		return nil, invalidf("unknown palette %q", paletteKey)
	}
	return s.update(ctx, userID, func(pref *domain.ThemePreference) error {
		pref.PaletteKey = paletteKey
		pref.CustomColors = map[string]string{}
		return nil
	})
}

func validMode(mode domain.ThemeMode) bool {
	return mode == domain.ThemeLight || mode == domain.ThemeDark
}

func (s *themeService) SetMode(ctx context.Context, userID primitive.ObjectID, mode domain.ThemeMode) (*Theme, error) {
	if !validMode(mode) {
		return nil, invalidf("mode must be light or dark")
	}
	return s.update(ctx, userID, func(pref *domain.ThemePreference) error {
		pref.Mode = mode
		return nil
	})
}

func (s *themeService) UpdateColor(ctx context.Context, userID primitive.ObjectID, mode domain.ThemeMode, colorKey, hex string) (*Theme, error) {
	if !validMode(mode) {
		return nil, invalidf("mode must be light or dark")
	}
	if !domain.IsColorKey(colorKey) {
		return nil, invalidf("unknown color %q", colorKey)
	}
	if !strings.HasPrefix(hex, "#") {
		return nil, domain.ErrInvalidHexColor
	}
	if _, err := domain.HexToHSL(hex); err != nil {
		return nil, err
	}

	return s.update(ctx, userID, func(pref *domain.ThemePreference) error {
		colors := maps.Clone(pref.CustomColors)
		if colors == nil {
			colors = map[string]string{}
		}
		colors[domain.CustomColorKey(pref.PaletteKey, mode, colorKey)] = strings.ToUpper(hex)
		pref.CustomColors = colors
		return nil
	})
}

func (s *themeService) ResetColors(ctx context.Context, userID primitive.ObjectID) (*Theme, error) {
	return s.update(ctx, userID, func(pref *domain.ThemePreference) error {
		pref.CustomColors = map[string]string{}
		return nil
	})
}
