package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	folderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3C1F5E"))
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	sliderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5A189A")).
			Padding(0, 1)
)

// View renders the pane as a bordered box of the given inner width.
// Widths below 24 are raised to 24.
func (p *Pane) View(width int) string {
	width = max(width, 24)
	focused := p.Focused()

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	for _, f := range p.Folders {
		b.WriteString("\n")
		b.WriteString(folderStyle.Render("▾ " + f.Title))
		for _, bind := range f.Bindings {
			b.WriteString("\n")
			b.WriteString(renderBinding(bind, bind == focused, width))
		}
	}
	return boxStyle.Width(width).Render(b.String())
}

func renderBinding(b *Binding, focused bool, width int) string {
	marker := "  "
	if focused {
		marker = "▸ "
	}

	labelWidth := width / 2
	label := b.Label
	if len(label) > labelWidth-2 {
		label = label[:labelWidth-2]
	}
	label = marker + label + strings.Repeat(" ", labelWidth-2-len(label))

	var value string
	switch b.Kind {
	case KindBool:
		if b.Value() == true {
			value = onStyle.Render("[x]")
		} else {
			value = offStyle.Render("[ ]")
		}
	case KindNumber:
		text := b.String()
		barWidth := width - labelWidth - len(text) - 1
		value = slider(b.Fraction(), barWidth) + " " + labelStyle.Render(text)
	}

	if focused {
		return focusStyle.Render(label) + value
	}
	return labelStyle.Render(label) + value
}

// slider draws a filled track with a knob at frac.
func slider(frac float64, width int) string {
	if width < 3 {
		return ""
	}
	knob := int(frac*float64(width-1) + 0.5)
	return sliderStyle.Render(strings.Repeat("━", knob)) +
		sliderStyle.Render("●") +
		dimStyle.Render(strings.Repeat("─", width-1-knob))
}
