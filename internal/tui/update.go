package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"quadro/internal/board"
	"quadro/internal/events"
	"quadro/internal/models"
	taskservice "quadro/internal/services/task"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataChangedMsg:
		return m.onEvent(msg.event)

	case opDoneMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		if msg.notice != "" {
			return m.withNotice(msg.notice)
		}
		m.clampCursors()
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelEvent()
			return m, tea.Quit
		}
		switch {
		case m.detail != nil:
			return m.updateDetail(msg)
		case m.form != formNone:
			return m.updateForm(msg)
		case m.screen == screenAuth:
			return m.updateAuth(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m Model) onEvent(ev events.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForEvent()}
	switch ev.Type {
	case events.EventAuthChanged:
		if ev.UserID == "" {
			m.screen = screenAuth
			m.registering = false
			m.authInputs = newAuthInputs(false)
			m.authFocus = 0
			m.form = formNone
			m.detail = nil
			m.drag = board.DragPayload{}
		} else {
			m.screen = screenBoard
		}
	case events.EventDataChanged:
		// The store already reloaded its mirrors; a re-render picks them up.
		m.clampCursors()
	}
	return m, tea.Batch(cmds...)
}

// --- auth screen ---

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.authFocus = (m.authFocus + delta + len(m.authInputs)) % len(m.authInputs)
		for i := range m.authInputs {
			if i == m.authFocus {
				m.authInputs[i].Focus()
			} else {
				m.authInputs[i].Blur()
			}
		}
		return m, nil

	case "ctrl+r":
		m.registering = !m.registering
		m.authInputs = newAuthInputs(m.registering)
		m.authFocus = 0
		return m, nil

	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	auth := m.app.Auth
	st := m.app.Store
	if m.registering {
		name := strings.TrimSpace(m.authInputs[0].Value())
		email := m.authInputs[1].Value()
		password := m.authInputs[2].Value()
		return m, func() tea.Msg {
			if _, err := auth.Register(context.Background(), name, email, password); err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{err: st.LoadGroups(context.Background()), notice: "welcome, " + name}
		}
	}
	email := m.authInputs[0].Value()
	password := m.authInputs[1].Value()
	return m, func() tea.Msg {
		if _, err := auth.Login(context.Background(), email, password); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{err: st.LoadGroups(context.Background())}
	}
}

// --- board screen ---

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.app.Store
	switch msg.String() {
	case "q":
		m.cancelEvent()
		return m, tea.Quit

	case "esc":
		if !m.drag.Empty() {
			m.drag = board.DragPayload{}
			m.dragLabel = ""
		}
		return m, nil

	case "j", "down":
		if m.drag.Empty() && st.CurrentGroup() != nil {
			m.taskCursor++
		}
		m.clampCursors()
		return m, nil

	case "k", "up":
		if m.drag.Empty() && m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case "h", "left":
		if m.colCursor > 0 {
			m.colCursor--
			m.taskCursor = 0
		}
		return m, nil

	case "l", "right":
		if m.colCursor < len(st.Columns())-1 {
			m.colCursor++
			m.taskCursor = 0
		}
		return m, nil

	case "J":
		groups := st.Groups()
		if m.groupCursor < len(groups)-1 {
			m.groupCursor++
		}
		return m, nil

	case "K":
		if m.groupCursor > 0 {
			m.groupCursor--
		}
		return m, nil

	case "enter":
		if !m.drag.Empty() {
			return m.dropOnFocusedColumn()
		}
		groups := st.Groups()
		if m.groupCursor < len(groups) {
			group := groups[m.groupCursor]
			m.colCursor = 0
			m.taskCursor = 0
			return m, func() tea.Msg {
				return opDoneMsg{err: st.SelectGroup(context.Background(), group)}
			}
		}
		return m, nil

	case " ":
		if task := m.focusedTask(); task != nil {
			m.drag = board.DragPayload{Kind: board.DragTask, ID: task.ID}
			m.dragLabel = task.Title
		}
		return m, nil

	case "m":
		if col := m.focusedColumn(); col != nil {
			m.drag = board.DragPayload{Kind: board.DragColumn, ID: col.ID}
			m.dragLabel = col.Title
		}
		return m, nil

	case "v":
		if task := m.focusedTask(); task != nil {
			m.detail = task
			body, err := glamour.Render(taskMarkdown(task), "dark")
			if err != nil {
				body = task.Description
			}
			m.detailBody = body
		}
		return m, nil

	case "g":
		return m.openForm(formGroup, ""), nil

	case "c":
		if st.CurrentGroup() != nil {
			return m.openForm(formColumn, ""), nil
		}
		return m, nil

	case "r":
		if col := m.focusedColumn(); col != nil {
			next := m.openForm(formColumnRename, col.ID)
			next.formInputs[0].SetValue(col.Title)
			return next, nil
		}
		return m, nil

	case "n":
		if m.focusedColumn() != nil {
			return m.openForm(formTask, ""), nil
		}
		return m, nil

	case "e":
		if task := m.focusedTask(); task != nil {
			next := m.openForm(formTaskEdit, task.ID)
			next.formInputs[0].SetValue(task.Title)
			next.formInputs[1].SetValue(task.Description)
			next.formInputs[2].SetValue(string(task.Priority))
			next.formInputs[3].SetValue(task.Deadline)
			return next, nil
		}
		return m, nil

	case "d":
		if task := m.focusedTask(); task != nil {
			id := task.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: st.DeleteTask(context.Background(), id)}
			}
		}
		return m, nil

	case "D":
		if col := m.focusedColumn(); col != nil {
			id := col.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: st.DeleteColumn(context.Background(), id)}
			}
		}
		return m, nil

	case "X":
		if group := st.CurrentGroup(); group != nil {
			id := group.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: st.DeleteGroup(context.Background(), id), notice: "group deleted"}
			}
		}
		return m, nil

	case "L":
		if group := st.CurrentGroup(); group != nil {
			id := group.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: st.LeaveGroup(context.Background(), id), notice: "left group"}
			}
		}
		return m, nil

	case "ctrl+o":
		auth := m.app.Auth
		return m, func() tea.Msg {
			return opDoneMsg{err: auth.Logout()}
		}
	}
	return m, nil
}

func (m Model) dropOnFocusedColumn() (tea.Model, tea.Cmd) {
	st := m.app.Store
	payload := m.drag
	m.drag = board.DragPayload{}
	m.dragLabel = ""
	target := m.focusedColumn()
	if target == nil {
		return m, nil
	}
	targetID := target.ID
	return m, func() tea.Msg {
		return opDoneMsg{err: st.HandleDrop(context.Background(), payload, targetID)}
	}
}

// --- task detail overlay ---

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v", "enter":
		m.detail = nil
		m.detailBody = ""
	}
	return m, nil
}

// --- modal forms ---

func (m Model) openForm(kind formKind, editID string) Model {
	m.form = kind
	m.formFocus = 0
	m.editID = editID

	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 255
		ti.Width = 40
		return ti
	}
	switch kind {
	case formGroup:
		m.formInputs = []textinput.Model{mk("group name"), mk("description")}
	case formColumn, formColumnRename:
		m.formInputs = []textinput.Model{mk("column title")}
	case formTask, formTaskEdit:
		m.formInputs = []textinput.Model{mk("title"), mk("description"), mk("priority (low/medium/high)"), mk("deadline (YYYY-MM-DD)")}
	}
	m.formInputs[0].Focus()
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = formNone
		m.formInputs = nil
		return m, nil

	case "tab", "shift+tab", "up", "down":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.formFocus = (m.formFocus + delta + len(m.formInputs)) % len(m.formInputs)
		for i := range m.formInputs {
			if i == m.formFocus {
				m.formInputs[i].Focus()
			} else {
				m.formInputs[i].Blur()
			}
		}
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	st := m.app.Store
	kind := m.form
	editID := m.editID
	values := make([]string, len(m.formInputs))
	for i := range m.formInputs {
		values[i] = strings.TrimSpace(m.formInputs[i].Value())
	}
	m.form = formNone
	m.formInputs = nil
	m.editID = ""

	switch kind {
	case formGroup:
		return m, func() tea.Msg {
			_, err := st.CreateGroup(context.Background(), values[0], values[1])
			return opDoneMsg{err: err, notice: "group created"}
		}

	case formColumn:
		return m, func() tea.Msg {
			return opDoneMsg{err: st.CreateColumn(context.Background(), values[0])}
		}

	case formColumnRename:
		return m, func() tea.Msg {
			return opDoneMsg{err: st.UpdateColumn(context.Background(), editID, values[0], nil)}
		}

	case formTask:
		col := m.focusedColumn()
		group := st.CurrentGroup()
		if col == nil || group == nil {
			return m, nil
		}
		req := taskservice.CreateTaskRequest{
			Title:       values[0],
			Description: values[1],
			Priority:    taskPriority(values[2]),
			Deadline:    values[3],
			ColumnID:    col.ID,
			GroupID:     group.ID,
		}
		return m, func() tea.Msg {
			return opDoneMsg{err: st.CreateTask(context.Background(), req)}
		}

	case formTaskEdit:
		priority := taskPriority(values[2])
		req := taskservice.UpdateTaskRequest{
			TaskID:      editID,
			Title:       &values[0],
			Description: &values[1],
			Priority:    &priority,
			Deadline:    &values[3],
		}
		return m, func() tea.Msg {
			return opDoneMsg{err: st.UpdateTask(context.Background(), req)}
		}
	}
	return m, nil
}

// --- helpers ---

func (m Model) focusedColumn() *models.Column {
	columns := m.app.Store.Columns()
	if m.colCursor >= 0 && m.colCursor < len(columns) {
		return columns[m.colCursor]
	}
	return nil
}

func (m Model) focusedTask() *models.Task {
	col := m.focusedColumn()
	if col == nil {
		return nil
	}
	tasks := tasksInColumn(m.app.Store.Tasks(), col.ID)
	if m.taskCursor >= 0 && m.taskCursor < len(tasks) {
		return tasks[m.taskCursor]
	}
	return nil
}

func (m *Model) clampCursors() {
	groups := m.app.Store.Groups()
	if m.groupCursor >= len(groups) {
		m.groupCursor = len(groups) - 1
	}
	if m.groupCursor < 0 {
		m.groupCursor = 0
	}
	columns := m.app.Store.Columns()
	if m.colCursor >= len(columns) {
		m.colCursor = len(columns) - 1
	}
	if m.colCursor < 0 {
		m.colCursor = 0
	}
	if col := m.focusedColumn(); col != nil {
		tasks := tasksInColumn(m.app.Store.Tasks(), col.ID)
		if m.taskCursor >= len(tasks) {
			m.taskCursor = len(tasks) - 1
		}
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m Model) withError(err error) (tea.Model, tea.Cmd) {
	m.notice = err.Error()
	m.noticeErr = true
	m.noticeSeq++
	return m, m.expireNotice(m.noticeSeq)
}

func (m Model) withNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeErr = false
	m.noticeSeq++
	m.clampCursors()
	return m, m.expireNotice(m.noticeSeq)
}

func tasksInColumn(tasks []*models.Task, columnID string) []*models.Task {
	var out []*models.Task
	for _, t := range tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out
}

func taskPriority(s string) models.Priority {
	p := models.Priority(strings.ToLower(s))
	if !p.Valid() {
		return models.PriorityMedium
	}
	return p
}
