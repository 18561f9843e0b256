package scene

import (
	"sort"
	"sync"
)

// Material describes how a mesh is shaded. Texture names a registered
// texture; Color is a 0xRRGGBB fallback or flat color.
type Material struct {
	Texture string  `yaml:"texture,omitempty" json:"texture,omitempty"`
	Color   uint32  `yaml:"color,omitempty" json:"color,omitempty"`
	Opacity float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
}

// DefaultMaterial is used whenever a texture cannot be resolved.
var DefaultMaterial = Material{Color: 0x888888, Opacity: 1}

// MaterialLibrary maps texture names to their representative color. A missing
// texture degrades to DefaultMaterial instead of failing.
type MaterialLibrary struct {
	mu       sync.Mutex
	textures map[string]uint32
	misses   map[string]int
}

// NewMaterialLibrary creates an empty library.
func NewMaterialLibrary() *MaterialLibrary {
	return &MaterialLibrary{
		textures: make(map[string]uint32),
		misses:   make(map[string]int),
	}
}

// DefaultMaterials returns the library holding the stock planet textures.
func DefaultMaterials() *MaterialLibrary {
	lib := NewMaterialLibrary()
	for name, color := range stockTextures {
		lib.Register(name, color)
	}
	return lib
}

// stockTextures are the average colors of the 2k planet maps.
var stockTextures = map[string]uint32{
	"2k_sun.jpg":            0xFFC233,
	"2k_mercury.jpg":        0x9C9A97,
	"2k_venus_surface.jpg":  0xD9A35B,
	"2k_earth_daymap.jpg":   0x3F77C4,
	"2k_mars.jpg":           0xC1440E,
	"2k_moon.jpg":           0xB5B3AE,
	"2k_jupiter.jpg":        0xD8B48A,
	"2k_saturn.jpg":         0xE3CF9A,
	"2k_uranus_texture.jpg": 0x9BD8E0,
	"2k_neptune.jpg":        0x4166F5,
}

// Register adds or replaces a texture.
func (l *MaterialLibrary) Register(texture string, color uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.textures[texture] = color
}

// Resolve returns a renderable material. Untextured materials pass through;
// textured ones take the texture's color, or DefaultMaterial when the texture
// is unknown. ok is false only for the fallback case.
func (l *MaterialLibrary) Resolve(m Material) (Material, bool) {
	if m.Opacity == 0 {
		m.Opacity = 1
	}
	if m.Texture == "" {
		return m, true
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	color, ok := l.textures[m.Texture]
	if !ok {
		l.misses[m.Texture]++
		fallback := DefaultMaterial
		fallback.Texture = m.Texture
		return fallback, false
	}
	m.Color = color
	return m, true
}

// Misses returns the sorted names of textures that failed to resolve.
func (l *MaterialLibrary) Misses() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.misses))
	for name := range l.misses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
