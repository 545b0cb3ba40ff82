package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/domain/weather"
	apperrors "github.com/yanqian/vibecast/pkg/errors"
)

// Registry keeps live sessions addressable by id.
type Registry interface {
	Save(s *Session) error
	Load(id string) (*Session, bool)
	Delete(id string)
	Close()
}

// DeviceReport is a client's answer to a device location request.
type DeviceReport struct {
	Coordinates *weather.Coordinates
	Error       string
}

// Service exposes session orchestration keyed by session id.
type Service interface {
	Create(ctx context.Context) (View, error)
	Get(ctx context.Context, id string) (View, error)
	Query(ctx context.Context, id, text string) (View, error)
	SelectSuggestion(ctx context.Context, id string, index int) (View, error)
	ChooseLocation(ctx context.Context, id string, loc weather.Location) (View, error)
	RequestDeviceLocation(ctx context.Context, id string) (View, error)
	ResolveDeviceLocation(ctx context.Context, id string, report DeviceReport) (View, error)
	Subscribe(ctx context.Context, id string) (<-chan View, func(), error)
	Close(ctx context.Context, id string) error
	Shutdown()
}

type service struct {
	cfg      Config
	gateway  weather.Service
	advisor  stylist.Service
	registry Registry
	logger   *slog.Logger

	base   context.Context
	cancel context.CancelFunc
}

// NewService wires up the session orchestrator. Sessions outlive the requests that
// create them and are bound to the service's own lifetime.
func NewService(cfg Config, gateway weather.Service, advisor stylist.Service, registry Registry, logger *slog.Logger) Service {
	base, cancel := context.WithCancel(context.Background())
	return &service{
		cfg:      cfg,
		gateway:  gateway,
		advisor:  advisor,
		registry: registry,
		logger:   logger.With("component", "session.service"),
		base:     base,
		cancel:   cancel,
	}
}

func (s *service) Create(_ context.Context) (View, error) {
	sess := New(s.base, uuid.NewString(), s.cfg, s.gateway, s.advisor, s.logger)
	if err := s.registry.Save(sess); err != nil {
		sess.Close()
		return View{}, err
	}
	s.logger.Info("session created", "session_id", sess.ID())
	sess.Activate()
	return sess.View(), nil
}

func (s *service) Get(_ context.Context, id string) (View, error) {
	sess, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

func (s *service) Query(_ context.Context, id, text string) (View, error) {
	sess, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	sess.Query(text)
	return sess.View(), nil
}

func (s *service) SelectSuggestion(_ context.Context, id string, index int) (View, error) {
	sess, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	if _, err := sess.SelectSuggestion(index); err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

func (s *service) ChooseLocation(_ context.Context, id string, loc weather.Location) (View, error) {
	sess, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" {
		return View{}, apperrors.Wrap(apperrors.CodeInvalidInput, "location name is required", nil)
	}
	if !weather.ValidCoordinates(loc.Latitude, loc.Longitude) {
		return View{}, apperrors.Wrap(apperrors.CodeInvalidInput, "coordinates out of range", nil)
	}
	sess.ChooseLocation(loc)
	return sess.View(), nil
}

func (s *service) RequestDeviceLocation(_ context.Context, id string) (View, error) {
	sess, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	if _, err := sess.RequestDeviceLocation(); err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

func (s *service) ResolveDeviceLocation(_ context.Context, id string, report DeviceReport) (View, error) {
	sess, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	var coords weather.Coordinates
	var locateErr error
	switch {
	case report.Error != "":
		locateErr = apperrors.Wrap(apperrors.CodeInvalidInput, report.Error, nil)
	case report.Coordinates != nil:
		coords = *report.Coordinates
		if !weather.ValidCoordinates(coords.Latitude, coords.Longitude) {
			return View{}, apperrors.Wrap(apperrors.CodeInvalidInput, "coordinates out of range", nil)
		}
	default:
		return View{}, apperrors.Wrap(apperrors.CodeInvalidInput, "either coordinates or error is required", nil)
	}
	if err := sess.ResolveDeviceLocation(coords, locateErr); err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

func (s *service) Subscribe(_ context.Context, id string) (<-chan View, func(), error) {
	sess, err := s.load(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := sess.Subscribe()
	return ch, cancel, nil
}

func (s *service) Close(_ context.Context, id string) error {
	if _, err := s.load(id); err != nil {
		return err
	}
	s.registry.Delete(id)
	return nil
}

// Shutdown closes every live session.
func (s *service) Shutdown() {
	s.cancel()
	s.registry.Close()
	s.logger.Info("sessions shut down")
}

func (s *service) load(id string) (*Session, error) {
	sess, ok := s.registry.Load(id)
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "session not found", nil)
	}
	return sess, nil
}
