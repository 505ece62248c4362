package player

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jsphweid/maestro/chord"
	"github.com/jsphweid/maestro/event"
	"github.com/jsphweid/maestro/model"
	"github.com/pkg/errors"
)

var ErrTransmit = errors.New("transmit failure")

// Input is the performer's side. Receive blocks until an event arrives or
// ctx is done; Drain discards whatever is already queued without blocking.
type Input interface {
	Receive(ctx context.Context) (model.RawEvent, error)
	Drain()
}

type Output interface {
	Send(model.EventRecord) error
}

type Config struct {
	// Sensitivity is the largest gap, in seconds, between events of one chord.
	Sensitivity float64
	// Debounce is how long input is ignored after each chord.
	Debounce time.Duration
}

type Option func(*Sequencer)

func WithLogger(logger *log.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(s *Sequencer) {
		s.observers = append(s.observers, o)
	}
}

// WithSleep replaces the debounce wait, mostly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Sequencer) {
		s.sleep = sleep
	}
}

// Sequencer plays one piece at a time, emitting the next chord each time the
// performer presses a key. It is not safe for concurrent use.
type Sequencer struct {
	in        Input
	out       Output
	cfg       Config
	logger    *log.Logger
	observers []Observer
	sleep     func(ctx context.Context, d time.Duration) error

	state    State
	piece    string
	session  string
	seq      []model.EventRecord
	cursor   int
	chords   int
	failures int
}

func New(in Input, out Output, cfg Config, opts ...Option) *Sequencer {
	s := &Sequencer{
		in:     in,
		out:    out,
		cfg:    cfg,
		logger: log.Default(),
		sleep:  sleepContext,
		state:  Idle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Sequencer) State() State {
	return s.state
}

func (s *Sequencer) Snapshot() Snapshot {
	return Snapshot{
		Piece:    s.piece,
		Session:  s.session,
		State:    s.state,
		Cursor:   s.cursor,
		Total:    len(s.seq),
		Chords:   s.chords,
		Failures: s.failures,
	}
}

func (s *Sequencer) transition(to State) {
	s.state = to
	snap := s.Snapshot()
	for _, o := range s.observers {
		o.Observe(snap)
	}
}

// Play runs piece until every event has been emitted. It returns nil when the
// piece finishes and ctx.Err() when ctx is cancelled first; either way the
// sequencer is back to Idle on return.
func (s *Sequencer) Play(ctx context.Context, piece model.Piece) error {
	s.piece = piece.Name
	s.session = uuid.New().String()
	s.seq = event.Filter(piece.Events)
	s.cursor = 0
	s.chords = 0
	s.failures = 0
	defer s.transition(Idle)

	logger := s.logger.With("piece", piece.Name, "session", s.session)
	logger.Info("piece loaded", "events", len(piece.Events), "notes", len(s.seq))

	s.in.Drain()

	// nothing to trigger, so AwaitingTrigger is skipped
	if len(s.seq) == 0 {
		s.transition(Finished)
		logger.Info("piece finished", "chords", 0)
		return nil
	}
	s.transition(AwaitingTrigger)

	for s.state == AwaitingTrigger {
		raw, err := s.in.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("playback cancelled", "cursor", s.cursor, "total", len(s.seq))
				return ctx.Err()
			}
			return errors.Wrap(err, "waiting for trigger")
		}

		if !event.IsTrigger(raw) {
			logger.Debug("ignoring input", "kind", raw.Kind, "note", raw.Note, "velocity", raw.Velocity)
			continue
		}

		if err := s.dispatch(ctx, logger, raw.Velocity); err != nil {
			logger.Info("playback cancelled", "cursor", s.cursor, "total", len(s.seq))
			return err
		}

		if err := s.sleep(ctx, s.cfg.Debounce); err != nil {
			return err
		}
		s.in.Drain()
	}

	logger.Info("piece finished", "chords", s.chords, "transmit_failures", s.failures)
	return nil
}

func (s *Sequencer) dispatch(ctx context.Context, logger *log.Logger, velocity uint8) error {
	s.transition(Dispatching)

	group, next := chord.NextChord(s.seq, s.cursor, s.cfg.Sensitivity)
	group = chord.Remap(group, velocity)
	logger.Debug("dispatching chord", "cursor", s.cursor, "next", next, "notes", chord.Notes(group), "trigger", velocity)

	for _, evt := range group {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.out.Send(evt); err != nil {
			s.failures++
			logger.Warn("could not send event", "note", evt.Note, "kind", evt.Kind, "err", errors.Wrapf(ErrTransmit, "%v", err))
		}
	}

	s.cursor = next
	s.chords++
	if s.cursor >= len(s.seq) {
		s.transition(Finished)
	} else {
		s.transition(AwaitingTrigger)
	}
	return nil
}
