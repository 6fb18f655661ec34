package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quadro/internal/app"
	"quadro/internal/board"
	"quadro/internal/events"
	"quadro/internal/models"
)

type screen int

const (
	screenAuth screen = iota
	screenBoard
)

type formKind int

const (
	formNone formKind = iota
	formGroup
	formColumn
	formColumnRename
	formTask
	formTaskEdit
)

// Model is the root bubbletea model. It owns no domain state of its own;
// every render reads the current mirrors straight from the sync store.
type Model struct {
	app    *app.App
	styles *Styles

	screen screen
	width  int
	height int

	// auth form
	registering bool
	authInputs  []textinput.Model
	authFocus   int

	// board cursors
	groupCursor int
	colCursor   int
	taskCursor  int

	// keyboard drag in flight; Empty when nothing is picked up
	drag      board.DragPayload
	dragLabel string

	// modal form
	form       formKind
	formInputs []textinput.Model
	formFocus  int
	editID     string

	// task detail overlay, body pre-rendered with glamour
	detail     *models.Task
	detailBody string

	notice    string
	noticeErr bool
	noticeSeq int

	eventCh     <-chan events.Event
	cancelEvent func()
}

// InitialModel builds the root model around a fully wired application.
func InitialModel(application *app.App) Model {
	m := Model{
		app:    application,
		styles: DefaultStyles(),
		screen: screenAuth,
	}
	m.authInputs = newAuthInputs(false)
	m.eventCh, m.cancelEvent = application.Notifier.Subscribe()
	if application.Auth.CurrentUser() != nil {
		m.screen = screenBoard
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForEvent()}
	if m.screen == screenBoard {
		cmds = append(cmds, m.loadGroupsCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForEvent() tea.Cmd {
	ch := m.eventCh
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return dataChangedMsg{event: ev}
	}
}

func (m Model) loadGroupsCmd() tea.Cmd {
	st := m.app.Store
	return func() tea.Msg {
		return opDoneMsg{err: st.LoadGroups(context.Background())}
	}
}

func (m Model) expireNotice(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func newAuthInputs(registering bool) []textinput.Model {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 255
		ti.Width = 32
		return ti
	}
	var inputs []textinput.Model
	if registering {
		inputs = append(inputs, mk("name"))
	}
	email := mk("email")
	pass := mk("password")
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'
	inputs = append(inputs, email, pass)
	inputs[0].Focus()
	return inputs
}
