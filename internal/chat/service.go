// internal/chat/service.go

// Package chat drives one conversation: user text goes through the query
// interpreter, resolved queries go to the matching backend, and every
// outcome lands in the transcript as a message. Ambiguity is handled as
// data (a clarification prompt) and never reaches the gateway.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "marketscout/internal/common/errors"
	"marketscout/internal/common/logger"
	"marketscout/internal/common/metrics"
	"marketscout/internal/common/observability"
	"marketscout/internal/gateway"
	"marketscout/internal/interpreter"
	"marketscout/internal/models"
	"marketscout/internal/session"
)

// ErrRequestInFlight is returned when a turn is started while a previous
// backend request is still outstanding.
var ErrRequestInFlight = errors.New("a request is already in flight")

const clarificationPrompt = `I need a bit more detail. Tell me the business type and the city, for example "pharmacy in Pune".`

const csvUploadPrompt = `No CSV file is attached to this session yet. Upload one first, then ask your question.`

// Outcome labels for metrics.
const (
	outcomeSuccess       = "success"
	outcomeClarification = "clarification"
	outcomeRemoteError   = "remote_error"
	outcomeConnectivity  = "connectivity_error"
)

type Service struct {
	research *gateway.ResearchClient
	csv      *gateway.CSVClient
	store    session.Store
	logger   logger.Logger
	obs      *observability.Observability

	mu    sync.Mutex
	state State
}

// New starts a chat service over an existing session, or a fresh one when
// sess is nil.
func New(research *gateway.ResearchClient, csv *gateway.CSVClient, store session.Store, log logger.Logger, obs *observability.Observability, sess *models.ChatSession) *Service {
	if sess == nil {
		sess = &models.ChatSession{
			ID:        uuid.NewString(),
			Backend:   models.BackendResearch,
			CreatedAt: time.Now().UTC(),
		}
	}

	return &Service{
		research: research,
		csv:      csv,
		store:    store,
		logger:   log.With(map[string]interface{}{"component": "chat", "sessionId": sess.ID}),
		obs:      obs,
		state:    State{Session: *sess},
	}
}

// State returns a copy of the current chat state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Session.Messages = append([]models.Message(nil), s.state.Session.Messages...)
	return st
}

// SwitchBackend routes subsequent turns to the given backend.
func (s *Service) SwitchBackend(backend models.Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, BackendSwitched{Backend: backend})
}

// Turn processes one user utterance and returns the assistant message that
// was appended to the transcript. The returned error is non-nil only for
// ErrRequestInFlight; backend failures come back inside the message so the
// caller can display them and let the user retry.
func (s *Service) Turn(ctx context.Context, text string) (models.Message, error) {
	s.mu.Lock()
	if s.state.InFlight {
		s.mu.Unlock()
		return models.Message{}, ErrRequestInFlight
	}

	backend := s.state.Session.Backend
	userMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Backend:   backend,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.state = Reduce(s.state, UserMessageAdded{Message: userMsg})
	s.state = Reduce(s.state, RequestStarted{})
	csvSessionID := s.state.Session.CSVSessionID
	s.mu.Unlock()

	start := time.Now()

	var reply models.Message
	var outcome string
	switch backend {
	case models.BackendCSV:
		reply, outcome = s.csvTurn(ctx, csvSessionID, text)
	default:
		reply, outcome = s.researchTurn(ctx, text)
	}

	s.finish(ctx, reply, outcome, time.Since(start))
	return reply, nil
}

func (s *Service) researchTurn(ctx context.Context, text string) (models.Message, string) {
	parsed := interpreter.Parse(text)
	if parsed.NeedsClarification {
		return s.assistantText(models.BackendResearch, clarificationPrompt), outcomeClarification
	}

	s.logger.Info("running research", map[string]interface{}{
		"businessType": parsed.BusinessType,
		"location":     parsed.Location,
	})

	payload, err := s.research.ComprehensiveResearch(ctx, parsed.BusinessType, parsed.Location, gateway.DefaultResearchOptions())
	if err != nil {
		return s.assistantError(models.BackendResearch, err), failureOutcome(err)
	}

	reply := s.assistantText(models.BackendResearch, fmt.Sprintf("Here is the market research for %s in %s.", parsed.BusinessType, parsed.Location))
	reply.Payload = payload
	return reply, outcomeSuccess
}

func (s *Service) csvTurn(ctx context.Context, csvSessionID, text string) (models.Message, string) {
	if csvSessionID == "" {
		return s.assistantText(models.BackendCSV, csvUploadPrompt), outcomeClarification
	}

	payload, err := s.csv.Chat(ctx, csvSessionID, text)
	if err != nil {
		return s.assistantError(models.BackendCSV, err), failureOutcome(err)
	}

	reply := s.assistantText(models.BackendCSV, "")
	reply.Payload = payload
	return reply, outcomeSuccess
}

// UploadCSV sends a file to the CSV backend and attaches the returned
// session handle to this chat session. The analysis payload is appended to
// the transcript like any assistant reply.
func (s *Service) UploadCSV(ctx context.Context, filename string, r io.Reader) (models.Message, error) {
	s.mu.Lock()
	if s.state.InFlight {
		s.mu.Unlock()
		return models.Message{}, ErrRequestInFlight
	}
	s.state = Reduce(s.state, RequestStarted{})
	s.mu.Unlock()

	start := time.Now()

	payload, err := s.csv.Upload(ctx, filename, r)
	if err != nil {
		reply := s.assistantError(models.BackendCSV, err)
		s.finish(ctx, reply, failureOutcome(err), time.Since(start))
		return reply, nil
	}

	sessionID, _ := payload["session_id"].(string)
	if sessionID == "" {
		// Without a handle every follow-up question would dead-end on the
		// upload prompt, so report the upload as failed.
		s.logger.Warn("upload response missing session_id", map[string]interface{}{"filename": filename})
		reply := s.assistantText(models.BackendCSV, "")
		reply.Error = "The CSV backend did not return a session id for this upload. Try uploading the file again."
		s.finish(ctx, reply, outcomeRemoteError, time.Since(start))
		return reply, nil
	}

	s.mu.Lock()
	s.state = Reduce(s.state, CSVSessionAttached{SessionID: sessionID, Filename: filename})
	s.mu.Unlock()

	reply := s.assistantText(models.BackendCSV, fmt.Sprintf("Analyzed %s.", filename))
	reply.Payload = payload
	s.finish(ctx, reply, outcomeSuccess, time.Since(start))
	return reply, nil
}

func (s *Service) finish(ctx context.Context, reply models.Message, outcome string, elapsed time.Duration) {
	s.mu.Lock()
	if reply.Error != "" {
		s.state = Reduce(s.state, TurnFailed{Message: reply})
	} else {
		s.state = Reduce(s.state, ResponseReceived{Message: reply})
	}
	saved := s.state.Session
	s.mu.Unlock()

	metrics.ChatTurnsTotal.WithLabelValues(string(reply.Backend), outcome).Inc()
	if s.obs != nil {
		s.obs.RecordTurnProcessed(ctx, outcome)
		s.obs.RecordTurnDuration(ctx, elapsed, outcome)
	}

	if s.store != nil {
		if err := s.store.Save(ctx, &saved); err != nil {
			s.logger.Warn("failed to persist session", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *Service) assistantText(backend models.Backend, text string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Backend:   backend,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *Service) assistantError(backend models.Backend, err error) models.Message {
	msg := s.assistantText(backend, "")
	if ge, ok := apperrors.AsGatewayError(err); ok {
		msg.Error = ge.Message
	} else {
		msg.Error = err.Error()
	}
	return msg
}

func failureOutcome(err error) string {
	if apperrors.IsConnectivity(err) {
		return outcomeConnectivity
	}
	return outcomeRemoteError
}
