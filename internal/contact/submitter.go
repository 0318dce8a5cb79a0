package contact

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"sheetform/internal/logger"
	"sheetform/internal/sheets"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusSent     = "Message sent successfully!"
	StatusRejected = "Failed to send message. Please try again."
	StatusError    = "Error occurred. Please try again."
)

// ErrSubmitInFlight is returned when Submit is called while an earlier submit
// has not finished yet.
var ErrSubmitInFlight = errors.New("a submit is already in flight")

type Outcome string

const (
	OutcomeSent     Outcome = "sent"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// Message is the user-facing status line for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeSent:
		return StatusSent
	case OutcomeRejected:
		return StatusRejected
	default:
		return StatusError
	}
}

// Sender delivers an encoded form to the remote endpoint and reports the HTTP
// status it answered with.
type Sender interface {
	PostForm(ctx context.Context, values url.Values) (int, error)
}

// Attempt describes one completed submit.
type Attempt struct {
	ID         uuid.UUID
	Outcome    Outcome
	StatusCode int
	Err        string
	At         time.Time
}

type Recorder interface {
	Record(ctx context.Context, attempt Attempt) error
}

type Option func(*Submitter)

// WithRecorder hands every completed attempt to r.
func WithRecorder(r Recorder) Option {
	return func(s *Submitter) { s.recorder = r }
}

func withClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// Submitter owns a single contact form: its field values, the status line of
// the last submit and whether a submit is currently running.
type Submitter struct {
	sender   Sender
	recorder Recorder
	now      func() time.Time

	mu         sync.Mutex
	state      FormState
	status     string
	submitting bool
}

func NewSubmitter(sender Sender, opts ...Option) *Submitter {
	s := &Submitter{sender: sender, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetField updates one field and leaves the others untouched. Values are
// stored exactly as given.
func (s *Submitter) SetField(name, value string) error {
	f, err := ParseField(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.With(f, value)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Submitter) Snapshot() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Submitter) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Submit sends the current form once. Remote and transport failures are
// folded into the returned Outcome and the status line; the only error is
// ErrSubmitInFlight, in which case nothing was sent and nothing changed.
func (s *Submitter) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	s.submitting = true
	sent := s.state
	s.mu.Unlock()

	code, err := s.sender.PostForm(ctx, sent.Values())
	outcome := classify(err)

	switch outcome {
	case OutcomeSent:
		logger.Info("contact form sent", zap.Int("status_code", code))
	case OutcomeRejected:
		logger.Warn("contact form rejected", zap.Int("status_code", code), zap.Error(err))
	default:
		logger.Error("contact form submit failed", err)
	}

	s.mu.Lock()
	s.submitting = false
	s.status = outcome.Message()
	if outcome == OutcomeSent {
		s.state = s.state.clearSent(sent)
	}
	s.mu.Unlock()

	s.record(ctx, outcome, code, err)
	return outcome, nil
}

func (s *Submitter) record(ctx context.Context, outcome Outcome, code int, err error) {
	if s.recorder == nil {
		return
	}
	attempt := Attempt{
		ID:         uuid.New(),
		Outcome:    outcome,
		StatusCode: code,
		At:         s.now().UTC(),
	}
	if err != nil {
		attempt.Err = err.Error()
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), attempt); err != nil {
		logger.Error("failed to record submit attempt", err, zap.String("attempt_id", attempt.ID.String()))
	}
}

func classify(err error) Outcome {
	if err == nil {
		return OutcomeSent
	}
	var statusErr *sheets.StatusError
	if errors.As(err, &statusErr) {
		return OutcomeRejected
	}
	return OutcomeError
}
