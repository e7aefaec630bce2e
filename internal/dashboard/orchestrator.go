package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Messages shown to the user.
const (
	MsgEnterCity      = "Please enter a city name"
	MsgLookupFailed   = "City not found or API failed."
	MsgLocationFailed = "Failed to get location-based weather"
)

var (
	ErrEmptyCity = errors.New("empty city")
	ErrNoAction  = errors.New("no previous action")

	// ErrGeolocationDenied covers every device-location failure.
	ErrGeolocationDenied = errors.New("geolocation denied")
)

// Renderer applies region updates to a display.
type Renderer interface {
	Render(updates []Update)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// Locator resolves the device position.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

type action struct {
	query  weather.WeatherQuery
	locate bool
}

// Orchestrator sequences the gateway calls for one user action and pushes
// the reshaped results to the renderer.
type Orchestrator struct {
	gateway  Gateway
	renderer Renderer
	alerter  Alerter
	locator  Locator
	logger   *slog.Logger
	clock    func() time.Time
	loc      *time.Location
	sessions *sessions

	// renderMu makes the staleness check and the write one step.
	renderMu sync.Mutex

	mu   sync.Mutex
	last *action
}

type Option func(*Orchestrator)

// WithLocator enables the locate action.
func WithLocator(l Locator) Option {
	return func(o *Orchestrator) { o.locator = l }
}

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) { o.clock = clock }
}

// WithLocation sets the time zone used for display and for "today".
func WithLocation(loc *time.Location) Option {
	return func(o *Orchestrator) { o.loc = loc }
}

func New(gateway Gateway, renderer Renderer, alerter Alerter, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		gateway:  gateway,
		renderer: renderer,
		alerter:  alerter,
		logger:   logger.With("component", "orchestrator"),
		clock:    time.Now,
		loc:      time.Local,
		sessions: newSessions(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Search looks up a city and, on success, fills every region.
// An error means the primary lookup did not happen or failed; the user has
// already been alerted.
func (o *Orchestrator) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		o.alerter.Alert(MsgEnterCity)
		return ErrEmptyCity
	}
	return o.run(ctx, action{query: weather.CityQuery(city)})
}

// Locate resolves the device position and looks it up. The search region
// receives the resolved location name.
func (o *Orchestrator) Locate(ctx context.Context) error {
	if o.locator == nil {
		o.alerter.Alert(MsgLocationFailed)
		return ErrGeolocationDenied
	}

	lat, lon, err := o.locator.Locate(ctx)
	if err != nil {
		o.logger.Warn("device location failed", "error", err)
		o.alerter.Alert(MsgLocationFailed)
		if errors.Is(err, ErrGeolocationDenied) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrGeolocationDenied, err)
	}

	return o.run(ctx, action{query: weather.CoordQuery(lat, lon), locate: true})
}

// Refresh repeats the most recent action.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	last := o.last
	o.mu.Unlock()

	if last == nil {
		return ErrNoAction
	}
	return o.run(ctx, *last)
}

func (o *Orchestrator) run(ctx context.Context, a action) error {
	sess := o.sessions.begin()
	logger := o.logger.With("session", sess.ID)

	o.mu.Lock()
	o.last = &a
	o.mu.Unlock()

	reading, err := o.gateway.Weather(ctx, a.query)
	if err != nil {
		logger.Error("weather lookup failed", "error", err)
		o.alert(sess, alertMessage(err, a))
		return fmt.Errorf("weather lookup: %w", err)
	}

	now := o.clock().In(o.loc)

	updates := RenderCurrent(NewCurrent(reading, now, o.loc))
	if a.locate {
		updates = append(updates, Update{Region: RegionSearch, Text: reading.Name})
	}
	if !o.apply(sess, updates) {
		logger.Info("discarding stale weather result", "city", reading.Name)
		return nil
	}

	o.fetchDependents(ctx, sess, logger, reading.Coord.Lat, reading.Coord.Lon, now)
	return nil
}

// fetchDependents issues the three follow-up lookups concurrently. Each one
// updates its own region when it finishes; a failure is logged and leaves
// that region as it was.
func (o *Orchestrator) fetchDependents(ctx context.Context, sess Session, logger *slog.Logger, lat, lon float64, now time.Time) {
	jobs := []struct {
		name string
		run  func() ([]Update, error)
	}{
		{
			name: "air_quality",
			run: func() ([]Update, error) {
				aq, err := o.gateway.AirQuality(ctx, lat, lon)
				if err != nil {
					return nil, err
				}
				return RenderAirQuality(aq.Current()), nil
			},
		},
		{
			name: "daily_forecast",
			run: func() ([]Update, error) {
				fc, err := o.gateway.Forecast(ctx, lat, lon)
				if err != nil {
					return nil, err
				}
				return []Update{RenderForecast(BucketDays(fc.List, ForecastDays))}, nil
			},
		},
		{
			name: "hourly_forecast",
			run: func() ([]Update, error) {
				fc, err := o.gateway.Forecast(ctx, lat, lon)
				if err != nil {
					return nil, err
				}
				return []Update{RenderHourly(SelectHourly(fc.List, now, HourlySlots), o.loc)}, nil
			},
		},
	}

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			updates, err := job.run()
			if err != nil {
				logger.Warn("dependent lookup failed", "lookup", job.name, "error", err)
				return
			}
			if !o.apply(sess, updates) {
				logger.Info("discarding stale dependent result", "lookup", job.name)
			}
		}()
	}
	wg.Wait()
}

// apply renders updates if sess is still the latest action.
func (o *Orchestrator) apply(sess Session, updates []Update) bool {
	o.renderMu.Lock()
	defer o.renderMu.Unlock()

	if !o.sessions.isCurrent(sess) {
		return false
	}
	o.renderer.Render(updates)
	return true
}

// alert shows message only if sess is still the latest action.
func (o *Orchestrator) alert(sess Session, message string) {
	o.renderMu.Lock()
	defer o.renderMu.Unlock()

	if !o.sessions.isCurrent(sess) {
		return
	}
	o.alerter.Alert(message)
}

func alertMessage(err error, a action) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	if a.locate {
		return MsgLocationFailed
	}
	return MsgLookupFailed
}
