// Package assets resolves named image identifiers to drawable frames.
// Frames register once, by name, and are looked up by the game when it
// builds scene nodes and by the renderer when it draws them.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

//go:embed defaults/atlas.yaml
var defaultAtlasYAML []byte

// ErrUnknownFrame is returned when a frame name is not registered.
var ErrUnknownFrame = errors.New("assets: unknown frame")

// CapSide selects which horizontal edge of a filled frame gets the cap rune.
type CapSide string

const (
	CapNone   CapSide = ""
	CapTop    CapSide = "top"
	CapBottom CapSide = "bottom"
)

// Frame is a drawable image: a size in scene points plus how to paint it in cells.
// Small sprites use Glyphs; large solid shapes use Fill with an optional Cap row.
type Frame struct {
	Name       string
	Width      float64
	Height     float64
	Color      core.Color
	Background core.Color
	Glyphs     []string
	Fill       rune
	Cap        rune
	CapSide    CapSide
}

// Size returns the frame size as a vector.
func (f Frame) Size() core.Vec2 {
	return core.V(f.Width, f.Height)
}

// Atlas is a registry of named frames. It is safe for concurrent use.
type Atlas struct {
	mu     sync.RWMutex
	frames map[string]Frame
}

// NewAtlas returns an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{frames: make(map[string]Frame)}
}

// Register adds a frame to the atlas.
// Panics if a frame with the same name is already registered.
func (a *Atlas) Register(f Frame) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.frames[f.Name]; exists {
		panic(fmt.Sprintf("assets: frame %q already registered", f.Name))
	}
	a.frames[f.Name] = f
}

// Frame returns the frame registered under name.
func (a *Atlas) Frame(name string) (Frame, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	f, ok := a.frames[name]
	if !ok {
		return Frame{}, fmt.Errorf("%w %q", ErrUnknownFrame, name)
	}
	return f, nil
}

// Names returns all registered frame names, sorted.
func (a *Atlas) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.frames))
	for name := range a.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// frameSpec is the YAML shape of a frame.
type frameSpec struct {
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	Color      string   `yaml:"color"`
	Background string   `yaml:"background"`
	Glyphs     []string `yaml:"glyphs"`
	Fill       string   `yaml:"fill"`
	Cap        string   `yaml:"cap"`
	CapSide    string   `yaml:"cap_side"`
}

type atlasSpec struct {
	Frames map[string]frameSpec `yaml:"frames"`
}

// Parse builds an atlas from YAML.
func Parse(data []byte) (*Atlas, error) {
	var spec atlasSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("assets: cannot parse atlas: %w", err)
	}

	a := NewAtlas()
	for name, fs := range spec.Frames {
		if fs.Width <= 0 || fs.Height <= 0 {
			return nil, fmt.Errorf("assets: frame %q has invalid size %gx%g", name, fs.Width, fs.Height)
		}
		a.Register(Frame{
			Name:       name,
			Width:      fs.Width,
			Height:     fs.Height,
			Color:      core.ParseColor(fs.Color),
			Background: core.ParseColor(fs.Background),
			Glyphs:     fs.Glyphs,
			Fill:       firstRune(fs.Fill),
			Cap:        firstRune(fs.Cap),
			CapSide:    CapSide(fs.CapSide),
		})
	}
	return a, nil
}

// Default returns the embedded atlas.
func Default() *Atlas {
	a, err := Parse(defaultAtlasYAML)
	if err != nil {
		panic(err) // embedded file is part of the build
	}
	return a
}

// Load reads a custom atlas, or returns the embedded one when path is empty.
func Load(path string) (*Atlas, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to read atlas %s: %w", path, err)
	}
	return Parse(data)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
