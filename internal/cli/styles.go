package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	bannerBoldStyle   = bannerStyle.Bold(true)
	promptLabelStyle  = lipgloss.NewStyle().Bold(true)
	promptAnswerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Osu! Replay Access Juggernaut - Polar Object Location Edition, initials in bold.
var bannerWords = []string{"Osu!", "Replay", "Access", "Juggernaut", "-", "Polar", "Object", "Location", "Edition"}

func renderBanner() string {
	parts := make([]string, 0, len(bannerWords))
	for _, w := range bannerWords {
		if w == "-" || len(w) < 2 {
			parts = append(parts, bannerStyle.Render(w))
			continue
		}
		parts = append(parts, bannerBoldStyle.Render(w[:1])+bannerStyle.Render(w[1:]))
	}
	return strings.Join(parts, bannerStyle.Render(" "))
}
