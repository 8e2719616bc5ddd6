package guide

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	guidedto "hrmon/internal/modules/guide/dto"
	"hrmon/internal/ui/theme"
)

// Render draws one carousel page: image reference, text, page dots and the
// navigation buttons. Prev is hidden on the first page and Next reads
// "Finish" on the last.
func Render(page guidedto.PageOutput, total, width int) string {
	body := lipgloss.NewStyle().Width(max(width-8, 20))

	var sb strings.Builder
	if page.Image != "" {
		sb.WriteString(theme.Muted.Render("[ "+page.Image+" ]") + "\n\n")
	}
	sb.WriteString(theme.Title.Render(page.Title) + "\n")
	sb.WriteString(body.Render(page.Description) + "\n\n")
	sb.WriteString(dots(page.Index, total) + "\n\n")
	sb.WriteString(buttons(page.Index, total))

	return theme.PaneActive.Width(max(width-4, 24)).Render(sb.String())
}

func dots(index, total int) string {
	parts := make([]string, total)
	for i := range parts {
		if i == index {
			parts[i] = theme.Hot.Render("●")
		} else {
			parts[i] = theme.Muted.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

func buttons(index, total int) string {
	next := "Next →"
	if index == total-1 {
		next = "Finish"
	}
	row := []string{}
	if index > 0 {
		row = append(row, theme.Muted.Render("← Prev"), "  ")
	}
	row = append(row, theme.Button.Render(next))
	return lipgloss.JoinHorizontal(lipgloss.Center, row...)
}
