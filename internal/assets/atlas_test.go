package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

func TestDefaultAtlasHasGameFrames(t *testing.T) {
	a := Default()

	for _, name := range []string{"tucan1", "tucan2", "tucan3", "tikiTop", "tikiBottom", "groundPiece", "sky"} {
		f, err := a.Frame(name)
		if err != nil {
			t.Errorf("Frame(%q) error: %v", name, err)
			continue
		}
		if f.Width <= 0 || f.Height <= 0 {
			t.Errorf("Frame(%q) has size %gx%g", name, f.Width, f.Height)
		}
	}

	top, _ := a.Frame("tikiTop")
	if top.Fill != '█' || top.CapSide != CapBottom {
		t.Errorf("tikiTop should be a filled frame capped at the bottom, got %+v", top)
	}
	sky, _ := a.Frame("sky")
	if sky.Background != core.ColorSky {
		t.Errorf("sky background = %d, expected ColorSky", sky.Background)
	}
}

func TestFrameUnknown(t *testing.T) {
	_, err := NewAtlas().Frame("nope")
	if !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("expected ErrUnknownFrame, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	a := NewAtlas()
	a.Register(Frame{Name: "x", Width: 1, Height: 1})

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate frame should panic")
		}
	}()
	a.Register(Frame{Name: "x", Width: 2, Height: 2})
}

func TestNamesSorted(t *testing.T) {
	a := NewAtlas()
	a.Register(Frame{Name: "b", Width: 1, Height: 1})
	a.Register(Frame{Name: "a", Width: 1, Height: 1})

	names := a.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, expected [a b]", names)
	}
}

func TestParseRejectsInvalidSize(t *testing.T) {
	_, err := Parse([]byte("frames:\n  bad:\n    width: 0\n    height: 3\n"))
	if err == nil {
		t.Error("zero-width frame should be rejected")
	}
}

func TestLoadCustomAtlas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	data := "frames:\n  tucan1:\n    width: 10\n    height: 8\n    glyphs: ['@']\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	f, err := a.Frame("tucan1")
	if err != nil {
		t.Fatalf("Frame() error: %v", err)
	}
	if f.Height != 8 || len(f.Glyphs) != 1 || f.Glyphs[0] != "@" {
		t.Errorf("unexpected frame %+v", f)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing atlas should be an error")
	}
}
