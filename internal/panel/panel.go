// Package panel is a small declarative control panel: folders of boolean and
// numeric bindings onto caller-owned variables, with range clamping, change
// callbacks and keyboard focus.
package panel

import (
	"math"
	"strconv"
)

// Kind identifies the widget a binding renders as.
type Kind int

const (
	KindBool Kind = iota
	KindNumber
)

// Event describes a value change made through the panel.
type Event struct {
	Folder string
	Label  string
	Value  any
}

// Number is the set of types a numeric binding can target.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Range bounds a numeric binding. Values are snapped to Min + k*Step and
// clamped to [Min, Max].
type Range struct {
	Min, Max, Step float64
}

// Snap returns v clamped to the range and rounded to the nearest step.
func (r Range) Snap(v float64) float64 {
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
		p := math.Pow(10, float64(r.decimals()))
		v = math.Round(v*p) / p
	}
	return max(r.Min, min(r.Max, v))
}

// Fraction returns v's position within the range in [0, 1].
func (r Range) Fraction(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	return max(0, min(1, (v-r.Min)/(r.Max-r.Min)))
}

// decimals is the number of fractional digits the step needs.
func (r Range) decimals() int {
	s := strconv.FormatFloat(r.Step, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}

// Binding connects one widget to one variable.
type Binding struct {
	Label string
	Kind  Kind
	Range Range // KindNumber only

	folder   *Folder
	get      func() any
	format   func() string
	fraction func() float64
	set      func(float64) bool // Number: snap and store; reports change
	flip     func()             // Bool only
	handlers []func(Event)
}

// OnChange registers fn to run after every change made through the panel.
func (b *Binding) OnChange(fn func(Event)) *Binding {
	b.handlers = append(b.handlers, fn)
	return b
}

// Value returns the bound variable's current value.
func (b *Binding) Value() any { return b.get() }

// String formats the current value for display.
func (b *Binding) String() string { return b.format() }

// Fraction returns a numeric binding's position within its range.
func (b *Binding) Fraction() float64 {
	if b.fraction == nil {
		return 0
	}
	return b.fraction()
}

// Toggle flips a boolean binding. It is a no-op for numbers.
func (b *Binding) Toggle() bool {
	if b.flip == nil {
		return false
	}
	b.flip()
	b.emit()
	return true
}

// Step moves a numeric binding by n steps. Booleans toggle on any non-zero n.
func (b *Binding) Step(n int) bool {
	if n == 0 {
		return false
	}
	if b.Kind == KindBool {
		return b.Toggle()
	}
	cur := b.numeric()
	return b.SetNumber(cur + float64(n)*b.Range.Step)
}

// SetNumber stores v after snapping it into range. It reports whether the
// variable changed.
func (b *Binding) SetNumber(v float64) bool {
	if b.set == nil {
		return false
	}
	if !b.set(v) {
		return false
	}
	b.emit()
	return true
}

func (b *Binding) numeric() float64 {
	switch v := b.get().(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (b *Binding) emit() {
	ev := Event{Folder: b.folder.Title, Label: b.Label, Value: b.get()}
	for _, fn := range b.handlers {
		fn(ev)
	}
	for _, fn := range b.folder.pane.handlers {
		fn(ev)
	}
}

// Folder groups related bindings under a title.
type Folder struct {
	Title    string
	Bindings []*Binding

	pane *Pane
}

// AddBool binds a checkbox to ptr.
func (f *Folder) AddBool(label string, ptr *bool) *Binding {
	b := &Binding{
		Label:  label,
		Kind:   KindBool,
		folder: f,
		get:    func() any { return *ptr },
		format: func() string {
			if *ptr {
				return "on"
			}
			return "off"
		},
		flip: func() { *ptr = !*ptr },
	}
	f.Bindings = append(f.Bindings, b)
	return b
}

// AddNumber binds a slider over r to ptr. Generic functions cannot be
// methods, so the folder is passed explicitly.
func AddNumber[T Number](f *Folder, label string, ptr *T, r Range) *Binding {
	b := &Binding{
		Label:  label,
		Kind:   KindNumber,
		Range:  r,
		folder: f,
		get:    func() any { return *ptr },
		format: func() string {
			return strconv.FormatFloat(float64(*ptr), 'f', r.decimals(), 64)
		},
		fraction: func() float64 { return r.Fraction(float64(*ptr)) },
		set: func(v float64) bool {
			next := T(r.Snap(v))
			if next == *ptr {
				return false
			}
			*ptr = next
			return true
		},
	}
	f.Bindings = append(f.Bindings, b)
	return b
}

// Pane is the root of a control panel.
type Pane struct {
	Title   string
	Folders []*Folder

	focus    int
	handlers []func(Event)
}

// New creates an empty pane.
func New(title string) *Pane {
	return &Pane{Title: title}
}

// AddFolder appends a folder.
func (p *Pane) AddFolder(title string) *Folder {
	f := &Folder{Title: title, pane: p}
	p.Folders = append(p.Folders, f)
	return f
}

// OnChange registers fn to run after any binding in the pane changes.
func (p *Pane) OnChange(fn func(Event)) {
	p.handlers = append(p.handlers, fn)
}

// Bindings returns every binding in display order.
func (p *Pane) Bindings() []*Binding {
	var out []*Binding
	for _, f := range p.Folders {
		out = append(out, f.Bindings...)
	}
	return out
}

// Find returns the binding with the given folder and label.
func (p *Pane) Find(folder, label string) *Binding {
	for _, f := range p.Folders {
		if f.Title != folder {
			continue
		}
		for _, b := range f.Bindings {
			if b.Label == label {
				return b
			}
		}
	}
	return nil
}

// Focused returns the binding with keyboard focus, or nil for an empty pane.
func (p *Pane) Focused() *Binding {
	all := p.Bindings()
	if len(all) == 0 {
		return nil
	}
	return all[p.focus%len(all)]
}

// Next moves focus down, wrapping at the end.
func (p *Pane) Next() { p.moveFocus(1) }

// Prev moves focus up, wrapping at the start.
func (p *Pane) Prev() { p.moveFocus(-1) }

func (p *Pane) moveFocus(d int) {
	n := len(p.Bindings())
	if n == 0 {
		return
	}
	p.focus = ((p.focus+d)%n + n) % n
}

// Toggle flips the focused binding if it is a boolean.
func (p *Pane) Toggle() bool {
	if b := p.Focused(); b != nil {
		return b.Toggle()
	}
	return false
}

// Increment steps the focused binding up.
func (p *Pane) Increment() bool {
	if b := p.Focused(); b != nil {
		return b.Step(1)
	}
	return false
}

// Decrement steps the focused binding down.
func (p *Pane) Decrement() bool {
	if b := p.Focused(); b != nil {
		return b.Step(-1)
	}
	return false
}
