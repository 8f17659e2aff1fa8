// internal/chat/reducer.go
package chat

import "marketscout/internal/models"

// State is the whole of the chat UI state: the transcript, the in-flight
// flag, and the active backend. It is advanced only through Reduce so every
// transition is explicit and testable.
type State struct {
	Session  models.ChatSession
	InFlight bool
}

type Action interface {
	isAction()
}

// UserMessageAdded appends the user's utterance to the transcript.
type UserMessageAdded struct {
	Message models.Message
}

// RequestStarted marks a backend request as outstanding. At most one may be
// outstanding per session.
type RequestStarted struct{}

// ResponseReceived appends the assistant's reply and clears the flag.
type ResponseReceived struct {
	Message models.Message
}

// TurnFailed appends an error reply and clears the flag.
type TurnFailed struct {
	Message models.Message
}

// BackendSwitched changes where subsequent turns are routed.
type BackendSwitched struct {
	Backend models.Backend
}

// CSVSessionAttached records the opaque handle issued by the CSV backend.
type CSVSessionAttached struct {
	SessionID string
	Filename  string
}

func (UserMessageAdded) isAction()   {}
func (RequestStarted) isAction()     {}
func (ResponseReceived) isAction()   {}
func (TurnFailed) isAction()         {}
func (BackendSwitched) isAction()    {}
func (CSVSessionAttached) isAction() {}

// Reduce returns the state after applying one action. The input state is
// not mutated.
func Reduce(s State, a Action) State {
	next := s
	next.Session.Messages = append([]models.Message(nil), s.Session.Messages...)

	switch act := a.(type) {
	case UserMessageAdded:
		next.Session.Messages = append(next.Session.Messages, act.Message)
	case RequestStarted:
		next.InFlight = true
	case ResponseReceived:
		next.Session.Messages = append(next.Session.Messages, act.Message)
		next.InFlight = false
	case TurnFailed:
		next.Session.Messages = append(next.Session.Messages, act.Message)
		next.InFlight = false
	case BackendSwitched:
		next.Session.Backend = act.Backend
	case CSVSessionAttached:
		next.Session.CSVSessionID = act.SessionID
		next.Session.CSVFilename = act.Filename
	}

	return next
}
