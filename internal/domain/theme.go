package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThemeMode selects the light or dark variant of a palette.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// DefaultPaletteKey is used until the user picks another palette.
const DefaultPaletteKey = "warm"

// ColorKeys lists the themable color slots, in display order.
var ColorKeys = []string{"background", "foreground", "card", "primary", "secondary", "accent", "border", "muted"}

var ErrInvalidHexColor = errors.New("color must be in #RRGGBB format")

// ColorSet maps a color slot to a hex value.
type ColorSet map[string]string

// Palette is a named pair of light and dark color sets.
type Palette struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Light       ColorSet `json:"light"`
	Dark        ColorSet `json:"dark"`
}

// Colors returns the set for mode, defaulting to light.
func (p Palette) Colors(mode ThemeMode) ColorSet {
	if mode == ThemeDark {
		return p.Dark
	}
	return p.Light
}

// PaletteKeys lists preset keys in display order.
var PaletteKeys = []string{"warm", "cool", "nature", "modern", "midnight"}

// Palettes holds the built-in presets.
var Palettes = map[string]Palette{
	"warm": {
		Key:         "warm",
		Name:        "Warm",
		Description: "Copper, terracotta and amber",
		Light: ColorSet{
			"background": "#F4F3F1", "foreground": "#1F1815", "card": "#FFFFFF", "primary": "#B8482D",
			"secondary": "#C85A2C", "accent": "#C47A1C", "border": "#E8DDD5", "muted": "#756F67",
		},
		Dark: ColorSet{
			"background": "#1A1815", "foreground": "#F5F3F0", "card": "#2D2420", "primary": "#E59A48",
			"secondary": "#F09955", "accent": "#DBA51B", "border": "#3D3530", "muted": "#8B8580",
		},
	},
	"cool": {
		Key:         "cool",
		Name:        "Cool",
		Description: "Blue, teal and indigo",
		Light: ColorSet{
			"background": "#F0F4F9", "foreground": "#0F1F35", "card": "#FFFFFF", "primary": "#024B7A",
			"secondary": "#0869A6", "accent": "#1F7A6F", "border": "#E0E9F3", "muted": "#3B5870",
		},
		Dark: ColorSet{
			"background": "#0F172A", "foreground": "#F1F5F9", "card": "#1E293B", "primary": "#38BDF8",
			"secondary": "#06B6D4", "accent": "#34D399", "border": "#334155", "muted": "#94A3B8",
		},
	},
	"nature": {
		Key:         "nature",
		Name:        "Nature",
		Description: "Green, terracotta and wood",
		Light: ColorSet{
			"background": "#F8F6F1", "foreground": "#1F2F28", "card": "#FFFFFF", "primary": "#1F4D40",
			"secondary": "#2D6D5D", "accent": "#3D8B70", "border": "#E5DDD5", "muted": "#5A7367",
		},
		Dark: ColorSet{
			"background": "#0F1612", "foreground": "#F0F4F1", "card": "#1A2420", "primary": "#52B788",
			"secondary": "#81C784", "accent": "#4CAF7F", "border": "#2D3A32", "muted": "#6B9080",
		},
	},
	"modern": {
		Key:         "modern",
		Name:        "Modern",
		Description: "Pink, violet and neutral",
		Light: ColorSet{
			"background": "#FAFAF9", "foreground": "#0F0F11", "card": "#FFFFFF", "primary": "#C1235F",
			"secondary": "#8B3A8B", "accent": "#D97706", "border": "#E4E4E7", "muted": "#4F4F52",
		},
		Dark: ColorSet{
			"background": "#09090B", "foreground": "#FAFAFA", "card": "#18181B", "primary": "#F472B6",
			"secondary": "#D8B4FE", "accent": "#FBBF24", "border": "#3F3F46", "muted": "#A1A1AA",
		},
	},
	"midnight": {
		Key:         "midnight",
		Name:        "Midnight",
		Description: "Deep blue, gold and black",
		Light: ColorSet{
			"background": "#F9FAFB", "foreground": "#050A12", "card": "#FFFFFF", "primary": "#172554",
			"secondary": "#1E40AF", "accent": "#D97706", "border": "#E5E7EB", "muted": "#3F4654",
		},
		Dark: ColorSet{
			"background": "#0F1419", "foreground": "#F3F4F6", "card": "#1F2937", "primary": "#60A5FA",
			"secondary": "#93C5FD", "accent": "#FBBF24", "border": "#374151", "muted": "#9CA3AF",
		},
	},
}

// ThemePreference is the persisted theme choice of one user. Unique per UserID.
type ThemePreference struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	PaletteKey   string             `bson:"paletteKey" json:"paletteKey"`
	Mode         ThemeMode          `bson:"mode" json:"mode"`
	CustomColors map[string]string  `bson:"customColors,omitempty" json:"customColors"` // key: palette-mode-color
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultThemePreference is what a user sees before saving anything.
func DefaultThemePreference(userID primitive.ObjectID) ThemePreference {
	return ThemePreference{
		UserID:       userID,
		PaletteKey:   DefaultPaletteKey,
		Mode:         ThemeLight,
		CustomColors: map[string]string{},
	}
}

// CustomColorKey builds the override key for a color slot of a palette variant.
func CustomColorKey(paletteKey string, mode ThemeMode, colorKey string) string {
	return fmt.Sprintf("%s-%s-%s", paletteKey, mode, colorKey)
}

// ResolveColors returns the active colors as HSL strings, custom overrides first.
func (t ThemePreference) ResolveColors() (map[string]string, error) {
	palette, ok := Palettes[t.PaletteKey]
	if !ok {
		palette = Palettes[DefaultPaletteKey]
	}
	base := palette.Colors(t.Mode)

	resolved := make(map[string]string, len(ColorKeys))
	for _, key := range ColorKeys {
		hex := base[key]
		if custom, ok := t.CustomColors[CustomColorKey(palette.Key, t.Mode, key)]; ok && custom != "" {
			hex = custom
		}
		hsl, err := HexToHSL(hex)
		if err != nil {
			return nil, fmt.Errorf("color %s: %w", key, err)
		}
		resolved[key] = hsl
	}
	return resolved, nil
}

// IsColorKey reports whether key is a themable slot.
func IsColorKey(key string) bool {
	for _, k := range ColorKeys {
		if k == key {
			return true
		}
	}
	return false
}

// HexToHSL converts "#RRGGBB" to the "H S% L%" form used by CSS variables.
func HexToHSL(hex string) (string, error) {
	trimmed := strings.TrimPrefix(hex, "#")
	if len(trimmed) != 6 {
		return "", ErrInvalidHexColor
	}
	value, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return "", ErrInvalidHexColor
	}

	r := float64((value>>16)&0xFF) / 255
	g := float64((value>>8)&0xFF) / 255
	b := float64(value&0xFF) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return fmt.Sprintf("%d %d%% %d%%", int(math.Round(h*360)), int(math.Round(s*100)), int(math.Round(l*100))), nil
}
