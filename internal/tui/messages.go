package tui

import "quadro/internal/events"

// opDoneMsg reports the result of a store or auth operation run as a command.
type opDoneMsg struct {
	err    error
	notice string
}

// dataChangedMsg arrives when the notifier publishes a change made elsewhere.
type dataChangedMsg struct {
	event events.Event
}

// noticeExpiredMsg clears the status line after a delay.
type noticeExpiredMsg struct{ seq int }
