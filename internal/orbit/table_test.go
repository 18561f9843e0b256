package orbit

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	tbl := DefaultTable()
	if err := tbl.Validate(); err != nil {
		t.Fatalf("DefaultTable invalid: %v", err)
	}
	if len(tbl.Planets) != 8 {
		t.Errorf("planets = %d, want 8", len(tbl.Planets))
	}
	if len(tbl.Comets) != 8 {
		t.Errorf("comets = %d, want 8", len(tbl.Comets))
	}

	moons := map[string][]string{}
	for _, p := range tbl.Planets {
		for _, m := range p.Moons {
			moons[p.Name] = append(moons[p.Name], m.Name)
		}
	}
	if got := strings.Join(moons["Earth"], ","); got != "Moon" {
		t.Errorf("Earth moons = %q, want Moon", got)
	}
	if got := strings.Join(moons["Mars"], ","); got != "Phobos,Deimos" {
		t.Errorf("Mars moons = %q, want Phobos,Deimos", got)
	}

	halley := tbl.Comets[0]
	if halley.Name != "Halley's Comet" || halley.TrailLength != 50 || halley.TrailColor != 0x87CEEB {
		t.Errorf("Halley = %+v", halley)
	}
}

func TestPlanetSpec_Axes(t *testing.T) {
	tests := []struct {
		name  string
		spec  PlanetSpec
		wantA float64
		wantB float64
	}{
		{"elliptical", PlanetSpec{Distance: 18, Ellipse: Ellipse{A: 18, B: 16}}, 18, 16},
		{"circular fallback", PlanetSpec{Distance: 12}, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.spec.Axes()
			if a != tt.wantA || b != tt.wantB {
				t.Errorf("Axes = %v, %v; want %v, %v", a, b, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Table)
		wantErr error
		wantMsg string
	}{
		{
			name:    "parabolic comet",
			mutate:  func(tb *Table) { tb.Comets[1].Eccentricity = 1 },
			wantErr: ErrEccentricity,
			wantMsg: "Comet Hale-Bopp",
		},
		{
			name:    "negative eccentricity",
			mutate:  func(tb *Table) { tb.Comets[0].Eccentricity = -0.1 },
			wantErr: ErrEccentricity,
		},
		{
			name:    "zero planet radius",
			mutate:  func(tb *Table) { tb.Planets[2].Radius = 0 },
			wantErr: ErrNonPositive,
			wantMsg: "Earth",
		},
		{
			name:    "negative distance",
			mutate:  func(tb *Table) { tb.Planets[0].Distance = -1 },
			wantErr: ErrNonPositive,
		},
		{
			name:    "zero ellipse axis",
			mutate:  func(tb *Table) { tb.Planets[0].Ellipse.B = 0 },
			wantErr: ErrNonPositive,
		},
		{
			name:    "zero moon distance",
			mutate:  func(tb *Table) { tb.Planets[3].Moons[0].Distance = 0 },
			wantErr: ErrNonPositive,
			wantMsg: "Phobos",
		},
		{
			name:    "zero trail length",
			mutate:  func(tb *Table) { tb.Comets[2].TrailLength = 0 },
			wantErr: ErrNonPositive,
		},
		{
			name:    "zero semi-major axis",
			mutate:  func(tb *Table) { tb.Comets[3].SemiMajorAxis = 0 },
			wantErr: ErrNonPositive,
		},
		{
			name:    "zero sun radius",
			mutate:  func(tb *Table) { tb.Sun.Radius = 0 },
			wantErr: ErrNonPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := DefaultTable()
			tt.mutate(&tbl)
			err := tbl.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should name %q", err, tt.wantMsg)
			}
		})
	}
}

const smallTable = `
sun:
  radius: 5
  material:
    texture: 2k_sun.jpg
planets:
  - name: Earth
    radius: 0.8
    distance: 18
    speed: 0.05
    ellipse: {a: 18, b: 16}
    material: {texture: 2k_earth_daymap.jpg}
    moons:
      - {name: Moon, radius: 0.2, distance: 2, speed: 0.08}
  - name: Vulcan
    radius: 0.3
    distance: 6
    speed: -0.2
    material: {color: 0xFF0000}
comets:
  - name: Encke
    radius: 0.2
    semi_major_axis: 25
    eccentricity: 0.848
    inclination: 0.1
    speed: 0.012
    trail_length: 30
    trail_color: 0xFFD700
`

func TestLoadTable(t *testing.T) {
	tbl, err := LoadTable(strings.NewReader(smallTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(tbl.Planets) != 2 || len(tbl.Comets) != 1 {
		t.Fatalf("planets/comets = %d/%d, want 2/1", len(tbl.Planets), len(tbl.Comets))
	}
	if tbl.Planets[0].Moons[0].Name != "Moon" {
		t.Errorf("moon = %+v", tbl.Planets[0].Moons)
	}
	vulcan := tbl.Planets[1]
	if a, b := vulcan.Axes(); a != 6 || b != 6 {
		t.Errorf("Vulcan axes = %v, %v; want circular 6", a, b)
	}
	if vulcan.Speed >= 0 {
		t.Errorf("Vulcan speed = %v, want retrograde", vulcan.Speed)
	}
	if vulcan.Material.Color != 0xFF0000 {
		t.Errorf("Vulcan color = %#x, want 0xff0000", vulcan.Material.Color)
	}
	if tbl.Comets[0].TrailColor != 0xFFD700 {
		t.Errorf("trail color = %#x, want 0xffd700", tbl.Comets[0].TrailColor)
	}
}

func TestLoadTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown key", "sun: {radius: 5}\nplanetz: []\n", nil},
		{"bad yaml", "sun: [\n", nil},
		{"invalid comet", "sun: {radius: 5}\ncomets:\n  - {name: X, radius: 1, semi_major_axis: 10, eccentricity: 1.2, trail_length: 5}\n", ErrEccentricity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadTableFile_Missing(t *testing.T) {
	if _, err := LoadTableFile(t.TempDir() + "/nope.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
