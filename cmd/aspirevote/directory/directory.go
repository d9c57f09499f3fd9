// Package directory is the event list a signed-in caller picks an election
// from. It loads the list once per view and sends the caller on to the screen
// for the event's current phase.
package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"aspirevote-backend/cmd/aspirevote/model"
	"aspirevote-backend/cmd/aspirevote/phase"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnauthenticated = errors.New("no bearer token in session")
	ErrEventNotFound   = errors.New("event not in directory")
	ErrClosed          = errors.New("directory closed")
)

type Fetcher interface {
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
}

type FetcherFunc func(ctx context.Context, token string) ([]model.Event, error)

func (f FetcherFunc) ListEvents(ctx context.Context, token string) ([]model.Event, error) {
	return f(ctx, token)
}

// Navigator moves the caller to another view. Directory calls it with its
// own lock held, so implementations must not call back into the Directory.
type Navigator interface {
	Navigate(dest phase.Destination)
}

type NavigatorFunc func(dest phase.Destination)

func (f NavigatorFunc) Navigate(dest phase.Destination) {
	f(dest)
}

type Option func(*Directory)

func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		d.now = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Directory) {
		d.logger = logger
	}
}

// Directory is bound to one view of one session. A new session or a new view
// gets a new Directory.
type Directory struct {
	session model.Session
	fetcher Fetcher
	nav     Navigator
	now     func() time.Time
	logger  zerolog.Logger

	mu         sync.Mutex
	events     []model.Event
	loading    bool
	started    bool
	closed     bool
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	err        error
}

func New(session model.Session, fetcher Fetcher, nav Navigator, opts ...Option) *Directory {
	d := &Directory{
		session: session,
		fetcher: fetcher,
		nav:     nav,
		now:     time.Now,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start loads the directory in the background. The fetch is cancelled by
// Close or by ctx.
func (d *Directory) Start(ctx context.Context) {
	go func() {
		_ = d.Load(ctx)
	}()
}

// Load fetches the event list. Only the first call fetches; later calls wait
// for that outcome and return it. Authentication failures redirect to
// onboarding; every other failure leaves the list empty. The returned error is
// for the caller's logs, the view shows an empty list either way.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.started {
		done := d.done
		d.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.err
	}

	d.started = true
	d.done = make(chan struct{})
	if !d.session.Authenticated() {
		defer d.mu.Unlock()
		d.finish(ErrUnauthenticated)
		d.logger.Info().Msg("no session token, redirecting to onboarding")
		d.nav.Navigate(phase.Onboarding)
		return ErrUnauthenticated
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.cancel = cancel
	d.loading = true
	generation := d.generation
	d.mu.Unlock()

	events, err := d.fetcher.ListEvents(ctx, d.session.Token)

	d.mu.Lock()
	defer d.mu.Unlock()

	if generation != d.generation {
		d.logger.Debug().Msg("discarding event list for a closed directory")
		d.finish(ErrClosed)
		return ErrClosed
	}

	d.loading = false
	d.cancel = nil
	if err != nil {
		d.finish(err)
		d.logger.Warn().Err(err).Msg("error fetching events")
		if errors.Is(err, ErrUnauthorized) {
			d.nav.Navigate(phase.Onboarding)
		}
		return err
	}

	d.events = events
	d.finish(nil)
	d.logger.Debug().Int("count", len(events)).Msg("events loaded")
	return nil
}

func (d *Directory) finish(err error) {
	d.err = err
	close(d.done)
}

// Close ends the view. An in-flight fetch is cancelled and its response, if
// one still arrives, is dropped without touching state or navigating.
func (d *Directory) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.generation++
	d.loading = false
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Events returns a copy of the loaded list.
func (d *Directory) Events() []model.Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	events := make([]model.Event, len(d.events))
	copy(events, d.events)
	return events
}

func (d *Directory) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Open routes the caller to the view for one listed event and returns where
// they were sent. Participants opening a deactivated event stay put and get
// phase.ErrEventNotActive.
func (d *Directory) Open(eventID string) (phase.Destination, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return phase.Destination{}, ErrClosed
	}

	event, ok := d.find(eventID)
	if !ok {
		return phase.Destination{}, ErrEventNotFound
	}

	dest, err := phase.Route(event, d.now(), d.session.Role)
	if err != nil {
		d.logger.Info().Str("event_id", eventID).Err(err).Msg("event opened but not routable")
		return phase.Destination{}, err
	}

	d.nav.Navigate(dest)
	return dest, nil
}

func (d *Directory) find(eventID string) (model.Event, bool) {
	for _, event := range d.events {
		if event.ID == eventID {
			return event, true
		}
	}
	return model.Event{}, false
}
