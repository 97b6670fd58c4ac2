// Package renderer owns the UI state of one trip planning session and renders it.
package renderer

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/composer"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Phase is the global state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseDisplaying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// FormState is what the user last typed into the trip form.
type FormState struct {
	URL         string
	Duration    string
	Preferences string
}

// State is an immutable snapshot of a Session, safe to render without locking.
type State struct {
	Phase     Phase
	Form      FormState
	Itinerary *models.Itinerary
	Expanded  map[int]bool
	Error     string
}

// IsExpanded reports whether a day card is open. Absent keys are collapsed.
func (s State) IsExpanded(day int) bool {
	return s.Expanded[day]
}

// Loading reports whether the form should be disabled.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// InitialExpansion is the expansion map applied after every successful load.
func InitialExpansion(*models.Itinerary) map[int]bool {
	return map[int]bool{1: true}
}

// Session is the single state container for one user. It is mutated only by
// Submit, LoadDemo, ToggleDay, Reset and DismissError.
type Session struct {
	mu       sync.Mutex
	composer *composer.Composer
	logger   *zap.Logger

	phase     Phase
	form      FormState
	itinerary *models.Itinerary
	expanded  map[int]bool
	errMsg    string
}

// NewSession creates an idle session that issues requests through backend.
func NewSession(backend composer.Backend, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		composer: composer.New(backend, logger),
		logger:   logger,
		expanded: map[int]bool{},
	}
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	expanded := make(map[int]bool, len(s.expanded))
	for day, open := range s.expanded {
		expanded[day] = open
	}
	return State{
		Phase:     s.phase,
		Form:      s.form,
		Itinerary: s.itinerary,
		Expanded:  expanded,
		Error:     s.errMsg,
	}
}

// Submit sends the trip form. A blank URL leaves the session untouched and no
// request is made. Any backend failure lands in PhaseError with a display message.
func (s *Session) Submit(ctx context.Context, url, durationInput, preferencesInput string) error {
	if _, err := composer.BuildTripRequest(url, durationInput, preferencesInput); err != nil {
		return err
	}

	if !s.begin(FormState{URL: url, Duration: durationInput, Preferences: preferencesInput}, true) {
		return models.ErrRequestInFlight
	}

	it, err := s.composer.Submit(ctx, url, durationInput, preferencesInput)
	s.finish(it, err)
	return err
}

// LoadDemo fetches the sample itinerary.
func (s *Session) LoadDemo(ctx context.Context) error {
	if !s.begin(FormState{}, false) {
		return models.ErrRequestInFlight
	}

	it, err := s.composer.LoadDemo(ctx)
	s.finish(it, err)
	return err
}

// ToggleDay flips the expansion of one day. It does nothing unless an
// itinerary containing that day is displayed.
func (s *Session) ToggleDay(day int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseDisplaying || s.itinerary == nil {
		return false
	}
	if _, ok := s.itinerary.DayByNumber(day); !ok {
		return false
	}

	if s.expanded[day] {
		delete(s.expanded, day)
	} else {
		s.expanded[day] = true
	}
	return true
}

// Reset clears the itinerary, the expansion map and the form.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseLoading {
		return
	}
	s.phase = PhaseIdle
	s.form = FormState{}
	s.itinerary = nil
	s.expanded = map[int]bool{}
	s.errMsg = ""
}

// DismissError hides the error banner and re-enables the form.
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseError {
		s.phase = PhaseIdle
		s.errMsg = ""
	}
}

func (s *Session) begin(form FormState, keepForm bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseLoading {
		return false
	}
	s.phase = PhaseLoading
	if keepForm {
		s.form = form
	}
	s.itinerary = nil
	s.expanded = map[int]bool{}
	s.errMsg = ""
	return true
}

func (s *Session) finish(it *models.Itinerary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.phase = PhaseError
		s.errMsg = models.UserMessage(err)
		if !errors.Is(err, models.ErrRequestInFlight) {
			s.logger.Info("Session request failed", zap.String("message", s.errMsg))
		}
		return
	}

	s.phase = PhaseDisplaying
	s.itinerary = it
	s.expanded = InitialExpansion(it)
}
