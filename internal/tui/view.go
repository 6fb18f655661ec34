package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quadro/internal/board"
	"quadro/internal/models"
)

func (m Model) View() string {
	switch {
	case m.detail != nil:
		return m.viewDetail()
	case m.form != formNone:
		return m.viewForm()
	case m.screen == screenAuth:
		return m.viewAuth()
	default:
		return m.viewBoard()
	}
}

func (m Model) viewAuth() string {
	var b strings.Builder
	title := "quadro — sign in"
	hint := "enter: sign in · ctrl+r: switch to register · ctrl+c: quit"
	labels := []string{"email", "password"}
	if m.registering {
		title = "quadro — register"
		hint = "enter: create account · ctrl+r: switch to sign in · ctrl+c: quit"
		labels = []string{"name", "email", "password"}
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	for i, input := range m.authInputs {
		b.WriteString(m.styles.FormLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderNotice())
	b.WriteString(m.styles.Help.Render(hint))
	return m.styles.Overlay.Render(b.String())
}

func (m Model) viewBoard() string {
	st := m.app.Store

	sidebar := m.renderSidebar()
	lanes := m.renderLanes()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", lanes)

	header := m.styles.Title.Render("quadro")
	if group := st.CurrentGroup(); group != nil {
		header += "  " + m.styles.Subtitle.Render(group.Name)
	}
	if st.IsLoading() {
		header += "  " + m.styles.Subtitle.Render("loading…")
	}

	status := m.renderNotice()
	if !m.drag.Empty() {
		verb := "moving task"
		if m.drag.Kind == board.DragColumn {
			verb = "moving column"
		}
		status += m.styles.Notice.Render(fmt.Sprintf("%s %q — h/l to pick a column, enter to drop, esc to cancel", verb, m.dragLabel)) + "\n"
	}

	help := m.styles.Help.Render(
		"J/K groups · enter open · h/l columns · j/k tasks · space move task · m move column · n task · e edit · v view · c column · r rename · d/D delete · g new group · L leave · ctrl+o logout · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", status+help)
}

func (m Model) renderSidebar() string {
	groups := m.app.Store.Groups()
	current := m.app.Store.CurrentGroup()

	var b strings.Builder
	b.WriteString(m.styles.ColumnTitle.Render("Groups"))
	b.WriteString("\n")
	if len(groups) == 0 {
		b.WriteString(m.styles.Subtitle.Render("none yet — press g"))
	}
	for i, group := range groups {
		marker := "  "
		if current != nil && group.ID == current.ID {
			marker = "* "
		}
		line := marker + group.Name
		if i == m.groupCursor {
			line = m.styles.SidebarFocus.Render(line)
		} else {
			line = m.styles.SidebarItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return m.styles.Sidebar.Render(b.String())
}

func (m Model) renderLanes() string {
	st := m.app.Store
	columns := st.Columns()
	if st.CurrentGroup() == nil {
		return m.styles.Subtitle.Render("select a group with J/K and enter")
	}

	tasks := st.Tasks()
	lanes := make([]string, 0, len(columns))
	for i, col := range columns {
		lanes = append(lanes, m.renderLane(col, tasksInColumn(tasks, col.ID), i == m.colCursor))
	}
	if len(lanes) == 0 {
		return m.styles.Subtitle.Render("no columns — press c to add one")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}

func (m Model) renderLane(col *models.Column, tasks []*models.Task, focused bool) string {
	var b strings.Builder
	b.WriteString(m.styles.ColumnTitle.Render(fmt.Sprintf("%s (%d)", col.Title, len(tasks))))
	b.WriteString("\n")
	for i, task := range tasks {
		style := m.styles.Card
		if focused && i == m.taskCursor {
			style = m.styles.CardFocus
		}
		if m.drag.Kind == board.DragTask && m.drag.ID == task.ID {
			style = m.styles.CardDrag
		}
		b.WriteString(style.Render(m.renderCard(task)))
		b.WriteString("\n")
	}

	lane := m.styles.Column
	if m.drag.Kind == board.DragColumn && m.drag.ID == col.ID {
		lane = m.styles.ColumnDrag
	} else if focused {
		lane = m.styles.ColumnFocus
	}
	return lane.Render(b.String())
}

func (m Model) renderCard(task *models.Task) string {
	var b strings.Builder
	b.WriteString(task.Title)
	b.WriteString("\n")
	b.WriteString(m.priorityStyle(task.Priority).Render(string(task.Priority)))
	if task.Deadline != "" {
		b.WriteString(m.styles.Subtitle.Render("  due " + task.Deadline))
	}
	return b.String()
}

func (m Model) priorityStyle(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return m.styles.PriorityHigh
	case models.PriorityLow:
		return m.styles.PriorityLow
	}
	return m.styles.PriorityMed
}

func (m Model) viewForm() string {
	titles := map[formKind]string{
		formGroup:        "New group",
		formColumn:       "New column",
		formColumnRename: "Rename column",
		formTask:         "New task",
		formTaskEdit:     "Edit task",
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(titles[m.form]))
	b.WriteString("\n\n")
	for i := range m.formInputs {
		b.WriteString(m.formInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab: next field · enter: save · esc: cancel"))
	return m.styles.Overlay.Render(b.String())
}

func (m Model) viewDetail() string {
	task := m.detail
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(task.Title))
	b.WriteString("\n")
	meta := string(task.Priority)
	if task.Deadline != "" {
		meta += " · due " + task.Deadline
	}
	if task.AssignedTo != "" {
		meta += " · assigned " + task.AssignedTo
	}
	b.WriteString(m.styles.Subtitle.Render(meta))
	b.WriteString("\n")
	b.WriteString(m.detailBody)
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("esc: back"))
	return m.styles.Overlay.Render(b.String())
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	style := m.styles.Notice
	if m.noticeErr {
		style = m.styles.ErrorNotice
	}
	return style.Render(m.notice) + "\n"
}

func taskMarkdown(task *models.Task) string {
	var b strings.Builder
	if task.Description != "" {
		b.WriteString(task.Description)
		b.WriteString("\n")
	}
	if task.Meta != "" {
		b.WriteString("\n**Goal:** ")
		b.WriteString(task.Meta)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		b.WriteString("*no description*")
	}
	return b.String()
}
