// Package assets provides model descriptors for the world entities. Models
// are glyph and color descriptions; an optional TOML manifest overrides the
// built-in set.
package assets

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/tomz197/tunnelrunner/internal/object"
)

// Placeholder is substituted for any model that is unknown or failed to load.
var Placeholder = object.Model{Glyph: '?', Color: 0xff00ff, Radius: 1, Placeholder: true}

var builtin = map[object.ModelKind]object.Model{
	object.ModelShipDefault:       {Glyph: 'A', Color: 0x00ff00, Radius: 1.2},
	object.ModelShipFighter:       {Glyph: 'V', Color: 0x00ccff, Radius: 1},
	object.ModelShipCruiser:       {Glyph: 'W', Color: 0xff8800, Radius: 1.5},
	object.ModelObstacle:          {Glyph: '@', Color: 0xcc3322, Radius: 20},
	object.ModelDecoration:        {Glyph: '*', Color: 0x8a7a55, Radius: 0.6},
	object.ModelPowerUpShield:     {Glyph: 'S', Color: 0x00ff00, Radius: 10},
	object.ModelPowerUpPoints:     {Glyph: '$', Color: 0x0088ff, Radius: 10},
	object.ModelPowerUpSpeed:      {Glyph: '>', Color: 0xffff00, Radius: 10},
	object.ModelPowerUpMultiplier: {Glyph: 'x', Color: 0xff00ff, Radius: 10},
	object.ModelPowerUpHealth:     {Glyph: '+', Color: 0xff0000, Radius: 10},
	object.ModelParticle:          {Glyph: '.', Color: 0xffaa00, Radius: 0.1},
}

// Provider hands out model clones. It implements object.Assets and is safe
// for concurrent use by many sessions.
type Provider struct {
	mu     sync.RWMutex
	models map[object.ModelKind]object.Model
	logger *log.Logger
}

// NewProvider creates a provider with the built-in models.
func NewProvider(logger *log.Logger) *Provider {
	p := &Provider{models: make(map[object.ModelKind]object.Model, len(builtin)), logger: logger}
	for k, m := range builtin {
		m.Kind = k
		p.models[k] = m
	}
	return p
}

// CloneModel implements object.Assets. Missing kinds come back as the
// placeholder tagged with the requested kind.
func (p *Provider) CloneModel(kind object.ModelKind) object.Model {
	p.mu.RLock()
	m, ok := p.models[kind]
	p.mu.RUnlock()
	if !ok {
		p.logger.Debug("model unavailable, using placeholder", "model", kind)
		ph := Placeholder
		ph.Kind = kind
		return ph
	}
	return m
}

// Available reports whether kind has a real model.
func (p *Provider) Available(kind object.ModelKind) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.models[kind]
	return ok
}

// manifest is the TOML form:
//
//	[models.obstacle]
//	glyph = "@"
//	color = "#cc3322"
//	radius = 20.0
type manifest struct {
	Models map[string]manifestModel `toml:"models"`
}

type manifestModel struct {
	Glyph    string  `toml:"glyph"`
	Color    string  `toml:"color"`
	Radius   float64 `toml:"radius"`
	Disabled bool    `toml:"disabled"`
}

// LoadManifest applies overrides from a TOML file. A broken entry makes
// that model unavailable without affecting the others; only an unreadable
// file is an error.
func (p *Provider) LoadManifest(path string) error {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return fmt.Errorf("load asset manifest %s: %w", path, err)
	}
	p.apply(m)
	return nil
}

// LoadManifestString is LoadManifest for in-memory content.
func (p *Provider) LoadManifestString(data string) error {
	var m manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return fmt.Errorf("decode asset manifest: %w", err)
	}
	p.apply(m)
	return nil
}

func (p *Provider) apply(m manifest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, entry := range m.Models {
		kind, ok := object.ParseModelKind(key)
		if !ok {
			p.logger.Warn("unknown model in manifest", "model", key)
			continue
		}
		if entry.Disabled {
			delete(p.models, kind)
			continue
		}
		model, err := entry.model(p.models[kind])
		if err != nil {
			p.logger.Debug("model failed to load", "model", key, "err", err)
			delete(p.models, kind)
			continue
		}
		model.Kind = kind
		p.models[kind] = model
	}
}

// model overlays the entry on base.
func (e manifestModel) model(base object.Model) (object.Model, error) {
	m := base
	if e.Glyph != "" {
		r, size := utf8.DecodeRuneInString(e.Glyph)
		if r == utf8.RuneError || size != len(e.Glyph) {
			return m, fmt.Errorf("glyph %q must be a single character", e.Glyph)
		}
		m.Glyph = r
	}
	if e.Color != "" {
		c, err := ParseColor(e.Color)
		if err != nil {
			return m, err
		}
		m.Color = c
	}
	if e.Radius < 0 {
		return m, fmt.Errorf("negative radius %v", e.Radius)
	}
	if e.Radius > 0 {
		m.Radius = e.Radius
	}
	if m.Glyph == 0 {
		return m, fmt.Errorf("no glyph")
	}
	if m.Radius == 0 {
		m.Radius = 1
	}
	return m, nil
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}

var _ object.Assets = (*Provider)(nil)
