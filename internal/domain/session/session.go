package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/domain/suggest"
	"github.com/yanqian/vibecast/internal/domain/weather"
	apperrors "github.com/yanqian/vibecast/pkg/errors"
	"github.com/yanqian/vibecast/pkg/metrics"
	"github.com/yanqian/vibecast/pkg/util"
)

const subscriberBuffer = 16

// DeviceLocator performs a one-shot device geolocation.
type DeviceLocator interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// Session owns one state record and drives it through
// Idle -> LocatingDevice -> FetchingWeather -> GeneratingAdvice -> Ready | Failed.
//
// Every triggered sequence takes a sequence number; continuations apply their result only
// while that number is still the latest, so a superseded sequence can never overwrite a
// newer one. Superseded requests are not cancelled.
type Session struct {
	id      string
	cfg     Config
	gateway weather.Service
	advisor stylist.Service
	logger  *slog.Logger
	feed    *suggest.Feed
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	phase     Phase
	location  *weather.Location
	snapshot  *weather.Snapshot
	advice    *stylist.Advice
	errMsg    string
	seq       uint64
	acted     bool
	closed    bool
	updatedAt time.Time

	notifyMu    sync.Mutex
	subscribers map[int]chan View
	nextSubID   int
}

// New builds an idle session. The session lives until Close or until parent is cancelled.
func New(parent context.Context, id string, cfg Config, gateway weather.Service, advisor stylist.Service, logger *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		id:          id,
		cfg:         cfg,
		gateway:     gateway,
		advisor:     advisor,
		logger:      logger.With("component", "session", "session_id", id),
		now:         util.NowUTC,
		ctx:         ctx,
		cancel:      cancel,
		phase:       PhaseIdle,
		subscribers: make(map[int]chan View),
	}
	s.updatedAt = s.now()
	s.feed = suggest.NewFeed(ctx, cfg.Feed, gateway, logger, s.notify)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Activate shows the default location when nobody has acted on the session yet.
// Only the first call can have an effect.
func (s *Session) Activate() {
	s.mu.Lock()
	if s.acted || s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.logger.Info("activating with default location", "location", s.cfg.DefaultLocation.Name)
	s.ChooseLocation(s.cfg.DefaultLocation)
}

// ChooseLocation clears any previous result and starts a weather then advice sequence.
// It returns the sequence number of the new sequence.
func (s *Session) ChooseLocation(loc weather.Location) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.acted = true
	s.seq++
	seq := s.seq
	s.location = &loc
	s.clearResultLocked()
	s.setPhaseLocked(PhaseFetchingWeather)
	s.wg.Add(1)
	s.mu.Unlock()
	s.notify()

	s.logger.Info("location chosen", "sequence", seq, "location", loc.Name, "latitude", loc.Latitude, "longitude", loc.Longitude)
	go s.run(seq, loc)
	return seq
}

func (s *Session) run(seq uint64, loc weather.Location) {
	defer s.wg.Done()

	snapshot, err := s.gateway.FetchWeather(s.ctx, loc.Latitude, loc.Longitude, loc.Name)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug("discarding superseded weather result", "sequence", seq)
		return
	}
	if err != nil {
		s.errMsg = WeatherFailureMessage
		s.setPhaseLocked(PhaseFailed)
		s.mu.Unlock()
		s.logger.Error("weather fetch failed", "sequence", seq, "location", loc.Name, "error", err)
		s.notify()
		return
	}
	s.snapshot = &snapshot
	s.setPhaseLocked(PhaseGeneratingAdvice)
	s.mu.Unlock()
	s.notify()

	advice := s.advisor.Generate(s.ctx, snapshot)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug("discarding superseded advice result", "sequence", seq)
		return
	}
	s.advice = &advice
	s.setPhaseLocked(PhaseReady)
	s.mu.Unlock()
	s.logger.Info("sequence ready", "sequence", seq, "location", loc.Name)
	s.notify()
}

// RequestDeviceLocation moves an idle or settled session into LocatingDevice. The previous
// result is cleared so it is never shown next to the new lookup.
func (s *Session) RequestDeviceLocation() (uint64, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, apperrors.Wrap(apperrors.CodeNotFound, "session closed", nil)
	}
	if s.phase.Busy() {
		s.mu.Unlock()
		return 0, apperrors.Wrap(apperrors.CodeBusy, "a lookup is already in progress", nil)
	}
	s.acted = true
	s.seq++
	seq := s.seq
	s.clearResultLocked()
	s.location = nil
	s.setPhaseLocked(PhaseLocatingDevice)
	s.mu.Unlock()

	s.logger.Info("device location requested", "sequence", seq)
	s.notify()
	return seq, nil
}

// ResolveDeviceLocation completes the pending device location request with either
// coordinates or the locator's failure.
func (s *Session) ResolveDeviceLocation(coords weather.Coordinates, locateErr error) error {
	s.mu.Lock()
	seq := s.seq
	pending := s.phase == PhaseLocatingDevice
	s.mu.Unlock()
	if !pending {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "no device location request pending", nil)
	}
	s.resolveDevice(seq, coords, locateErr)
	return nil
}

func (s *Session) resolveDevice(seq uint64, coords weather.Coordinates, locateErr error) {
	s.mu.Lock()
	if seq != s.seq || s.phase != PhaseLocatingDevice {
		s.mu.Unlock()
		s.logger.Debug("ignoring superseded device location", "sequence", seq)
		return
	}
	if locateErr != nil {
		s.errMsg = GeolocationFailureMessage
		s.setPhaseLocked(PhaseFailed)
		s.mu.Unlock()
		s.logger.Warn("device geolocation failed", "sequence", seq, "error", locateErr)
		s.notify()
		return
	}
	s.mu.Unlock()

	s.ChooseLocation(weather.Location{
		Name:      DeviceLocationName,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	})
}

// UseDeviceLocation requests a device location and resolves it with locator in the background.
func (s *Session) UseDeviceLocation(locator DeviceLocator) error {
	seq, err := s.RequestDeviceLocation()
	if err != nil {
		return err
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		coords, err := locator.Locate(s.ctx)
		s.resolveDevice(seq, coords, err)
	}()
	return nil
}

// Query feeds raw search text into the suggestion feed.
func (s *Session) Query(text string) {
	s.feed.Input(text)
}

// SelectSuggestion chooses one of the current candidates.
func (s *Session) SelectSuggestion(index int) (weather.Location, error) {
	loc, err := s.feed.Select(index)
	if err != nil {
		return weather.Location{}, err
	}
	s.ChooseLocation(loc)
	return loc, nil
}

// View returns a copy of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	v := View{
		ID:        s.id,
		Phase:     s.phase,
		Error:     s.errMsg,
		Sequence:  s.seq,
		UpdatedAt: s.updatedAt,
	}
	if s.location != nil {
		loc := *s.location
		v.Location = &loc
	}
	if s.snapshot != nil {
		snap := *s.snapshot
		v.Weather = &snap
		v.Condition = weather.DescribeCode(snap.WeatherCode)
	}
	if s.advice != nil {
		advice := *s.advice
		advice.ColorPalette = append([]string(nil), s.advice.ColorPalette...)
		v.Advice = &advice
	}
	s.mu.Unlock()

	v.Query = s.feed.View()
	return v
}

// Subscribe streams a view after every change, starting with the current one. Slow
// subscribers skip intermediate views. The returned func unsubscribes.
func (s *Session) Subscribe() (<-chan View, func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	ch := make(chan View, subscriberBuffer)
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	ch <- s.View()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.notifyMu.Lock()
			defer s.notifyMu.Unlock()
			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
}

func (s *Session) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if len(s.subscribers) == 0 {
		return
	}
	v := s.View()
	for _, ch := range s.subscribers {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// Wait blocks until every in-flight sequence has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close stops the feed, cancels in-flight work and ends all subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.feed.Close()
	s.cancel()

	s.notifyMu.Lock()
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	s.notifyMu.Unlock()
	s.logger.Info("session closed")
}

// clearResultLocked drops the weather, advice and error of the previous sequence.
func (s *Session) clearResultLocked() {
	s.snapshot = nil
	s.advice = nil
	s.errMsg = ""
}

func (s *Session) setPhaseLocked(p Phase) {
	s.phase = p
	s.updatedAt = s.now()
	metrics.SessionTransitions.WithLabelValues(string(p)).Inc()
}
