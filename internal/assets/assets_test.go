package assets

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/tunnelrunner/internal/object"
)

func newProvider() *Provider {
	return NewProvider(log.New(io.Discard))
}

func TestEveryKindHasABuiltinModel(t *testing.T) {
	p := newProvider()
	for _, k := range object.ModelKinds() {
		m := p.CloneModel(k)
		if m.Placeholder {
			t.Fatalf("%v has no built-in model", k)
		}
		if m.Kind != k {
			t.Fatalf("%v cloned as %v", k, m.Kind)
		}
	}
}

func TestUnknownKindIsPlaceholder(t *testing.T) {
	m := newProvider().CloneModel(object.ModelKind(99))
	if !m.Placeholder || m.Glyph != Placeholder.Glyph {
		t.Fatalf("model = %+v, want placeholder", m)
	}
	if m.Kind != object.ModelKind(99) {
		t.Fatal("placeholder should keep the requested kind")
	}
}

func TestClonesAreIndependent(t *testing.T) {
	p := newProvider()
	a := p.CloneModel(object.ModelObstacle)
	a.Color = 0
	if p.CloneModel(object.ModelObstacle).Color == 0 {
		t.Fatal("mutating a clone changed the provider")
	}
}

func TestManifestOverrides(t *testing.T) {
	p := newProvider()
	err := p.LoadManifestString(`
[models.obstacle]
glyph = "O"
color = "#112233"

[models.ship_fighter]
glyph = "too long"

[models.powerup_health]
disabled = true

[models.teapot]
glyph = "t"
`)
	if err != nil {
		t.Fatalf("LoadManifestString: %v", err)
	}
	o := p.CloneModel(object.ModelObstacle)
	if o.Glyph != 'O' || o.Color != 0x112233 || o.Radius != builtin[object.ModelObstacle].Radius {
		t.Fatalf("obstacle = %+v", o)
	}
	if !p.CloneModel(object.ModelShipFighter).Placeholder {
		t.Fatal("broken entry should fall back to the placeholder")
	}
	if p.Available(object.ModelPowerUpHealth) {
		t.Fatal("disabled model still available")
	}
	if !p.Available(object.ModelShipDefault) {
		t.Fatal("untouched model lost")
	}
}

func TestLoadManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.toml")
	if err := os.WriteFile(path, []byte("[models.asteroid]\nradius = 2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := newProvider()
	if err := p.LoadManifest(path); err != nil {
		t.Fatal(err)
	}
	if r := p.CloneModel(object.ModelDecoration).Radius; r != 2.5 {
		t.Fatalf("decoration radius = %v", r)
	}
	if err := p.LoadManifest(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing manifest should be an error")
	}
}

func TestParseColor(t *testing.T) {
	if c, err := ParseColor("ff8800"); err != nil || c != 0xff8800 {
		t.Fatalf("ParseColor = %x, %v", c, err)
	}
	for _, bad := range []string{"", "#fff", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) should fail", bad)
		}
	}
}
