package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-panel/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultCity = "Pune"

type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, city string) (*models.CurrentResponse, error)
}

// Panel owns the single ViewState of the weather panel. Every submit
// replaces the state wholesale; overlapping submits are sequenced so only
// the latest one may set a terminal state.
type Panel struct {
	client      WeatherClient
	logger      *zap.Logger
	defaultCity string
	observers   []func(ViewState)

	mu           sync.RWMutex
	state        ViewState
	night        bool
	city         string
	seq          uint64
	cancel       context.CancelFunc
	lastFetch    time.Time
	successCount int
	failureCount int
}

type Option func(*Panel)

func WithDefaultCity(city string) Option {
	return func(p *Panel) {
		if city = strings.TrimSpace(city); city != "" {
			p.defaultCity = city
		}
	}
}

// WithObserver registers fn to be called with every new state, in
// transition order. fn runs with the panel locked and must not call back
// into the Panel.
func WithObserver(fn func(ViewState)) Option {
	return func(p *Panel) {
		p.observers = append(p.observers, fn)
	}
}

// NewPanel creates a panel in the Loading state; call Mount to issue the
// default query.
func NewPanel(client WeatherClient, logger *zap.Logger, opts ...Option) *Panel {
	p := &Panel{
		client:      client,
		logger:      logger,
		defaultCity: DefaultCity,
		state:       Loading(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mount issues the default query.
func (p *Panel) Mount(ctx context.Context) (ViewState, error) {
	return p.Submit(ctx, p.defaultCity)
}

// BeginMount starts the default query and returns the function that
// completes it. Any submit issued after BeginMount returns supersedes it.
func (p *Panel) BeginMount(ctx context.Context) (func() (ViewState, error), error) {
	return p.Begin(ctx, p.defaultCity)
}

// Submit looks up the weather for city and returns the resulting state.
//
// A blank city performs no request, resets the panel to Idle and returns
// ErrEmptyQuery. If a newer submit starts before this one completes, this
// call's request is cancelled, its result discarded, and ErrSuperseded is
// returned with the panel's current state.
func (p *Panel) Submit(ctx context.Context, city string) (ViewState, error) {
	complete, err := p.Begin(ctx, city)
	if err != nil {
		return Idle(), err
	}
	return complete()
}

// Begin takes the next sequence token and moves the panel to Loading before
// returning; the request itself runs when the returned function is called.
// A blank city resets the panel to Idle and returns ErrEmptyQuery.
func (p *Panel) Begin(ctx context.Context, city string) (func() (ViewState, error), error) {
	city = strings.TrimSpace(city)
	if city == "" {
		p.mu.Lock()
		p.supersedeLocked()
		p.setLocked(Idle())
		p.mu.Unlock()

		p.logger.Debug("Empty query rejected")
		return nil, ErrEmptyQuery
	}

	p.mu.Lock()
	token := p.supersedeLocked()
	reqCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.city = city
	p.lastFetch = time.Now()
	p.setLocked(Loading())
	p.mu.Unlock()

	return func() (ViewState, error) {
		defer cancel()
		return p.complete(reqCtx, token, city)
	}, nil
}

func (p *Panel) complete(ctx context.Context, token uint64, city string) (ViewState, error) {
	logger := p.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("city", city))
	logger.Info("Fetching current weather")

	next, night, err := p.fetch(ctx, city)

	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.seq {
		logger.Debug("Discarding superseded response", zap.Error(err))
		return p.state, ErrSuperseded
	}
	p.cancel = nil

	if err != nil {
		p.failureCount++
		logger.Warn("Weather lookup failed", zap.Error(err))
	} else {
		p.successCount++
		p.night = night
		logger.Info("Weather loaded",
			zap.String("category", string(next.Category())),
			zap.Bool("night", night))
	}

	p.setLocked(next)
	return next, nil
}

// fetch performs the request and classifies the outcome. The returned error
// is for diagnostics only; the state already carries the user-facing text.
func (p *Panel) fetch(ctx context.Context, city string) (ViewState, bool, error) {
	resp, err := p.client.GetCurrentWeather(ctx, city)
	if err != nil {
		return Failed(NetworkErrorMessage), false, err
	}
	if resp == nil {
		return Failed(NetworkErrorMessage), false, fmt.Errorf("empty response for %s", city)
	}

	if resp.Cod != models.StatusOK {
		perr := &ProviderError{Code: int(resp.Cod), Message: resp.Message}
		return Failed(perr.UserMessage()), false, perr
	}

	report := models.NewWeatherReport(resp)
	if report.Icon == "" {
		p.logger.Warn("Provider response has no weather entries", zap.String("city", city))
		return Loaded(report, CategoryDefault), false, nil
	}

	return Loaded(report, Classify(report.Icon, report.Temperature)), IsNight(report.Icon), nil
}

// supersedeLocked invalidates any in-flight request and returns the new
// sequence token.
func (p *Panel) supersedeLocked() uint64 {
	p.seq++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return p.seq
}

func (p *Panel) setLocked(state ViewState) {
	p.state = state
	for _, fn := range p.observers {
		fn(state)
	}
}

func (p *Panel) State() ViewState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// NightMode is the day/night display mode of the last classified report.
func (p *Panel) NightMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.night
}

// City is the last non-blank city submitted, or "" before the first submit.
func (p *Panel) City() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.city
}

func (p *Panel) GetLastFetchTime() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastFetch
}

func (p *Panel) GetStats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"last_fetch_time": p.lastFetch,
		"success_count":   p.successCount,
		"failure_count":   p.failureCount,
		"city":            p.city,
		"status":          p.state.Status().String(),
	}
}
