package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"liteboard/internal/domain/models"
)

const columnWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(columnWidth)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	bodyStyle   = lipgloss.NewStyle().Faint(true)
	nestedStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// renderBoard draws the lists side by side, one column each, cards in order.
func renderBoard(project *models.Project, lists []models.List) string {
	var sb strings.Builder
	if project != nil {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", project.Name, idStyle.Render(fmt.Sprintf("#%d", project.ID)))))
		sb.WriteString("\n")
	}
	if len(lists) == 0 {
		sb.WriteString("No lists yet. Add one with `boardctl list add <title>`.\n")
		return sb.String()
	}

	columns := make([]string, 0, len(lists))
	for _, l := range lists {
		columns = append(columns, renderColumn(l))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	sb.WriteString("\n")
	return sb.String()
}

func renderColumn(l models.List) string {
	lines := []string{
		headerStyle.Render(l.Title) + " " + idStyle.Render(fmt.Sprintf("#%d", l.ID)),
		"",
	}
	if len(l.Items) == 0 {
		lines = append(lines, bodyStyle.Render("(empty)"))
	}
	for _, item := range l.Items {
		switch it := item.(type) {
		case models.EntryItem:
			lines = append(lines, idStyle.Render(fmt.Sprintf("#%d", it.Entry.ID))+" "+it.Entry.DisplayTitle())
			if body := strings.TrimSpace(it.Entry.Content); body != "" && body != it.Entry.DisplayTitle() {
				lines = append(lines, bodyStyle.Render("  "+body))
			}
		case models.ListItem:
			lines = append(lines, nestedStyle.Render(fmt.Sprintf("▸ %s (%d items)", it.List.Title, len(it.List.Items))))
		}
	}
	return columnStyle.Render(strings.Join(lines, "\n"))
}

func renderProjects(projects []models.Project) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %s", "ID", "NAME")))
	sb.WriteString("\n")
	for _, p := range projects {
		line := fmt.Sprintf("%-6d %s", p.ID, p.Name)
		if p.Description != "" {
			line += "  " + bodyStyle.Render(p.Description)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
