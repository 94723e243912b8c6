package environment

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWeatherTimeout = 8 * time.Second
	DefaultNotamTimeout   = 6 * time.Second
)

// Fetcher wraps the providers with timeouts and conservative fallbacks.
// None of its methods return an error: upstream failures degrade to defaults.
type Fetcher struct {
	weather        WeatherProvider
	sources        []NotamSource
	weatherTimeout time.Duration
	notamTimeout   time.Duration
	logger         *slog.Logger
}

// FetcherConfig sets per-call timeouts; zero values use the defaults
type FetcherConfig struct {
	WeatherTimeout time.Duration
	NotamTimeout   time.Duration
}

// NewFetcher creates a fetcher. weather may be nil, sources may be empty.
func NewFetcher(weather WeatherProvider, sources []NotamSource, cfg FetcherConfig, logger *slog.Logger) *Fetcher {
	if cfg.WeatherTimeout <= 0 {
		cfg.WeatherTimeout = DefaultWeatherTimeout
	}
	if cfg.NotamTimeout <= 0 {
		cfg.NotamTimeout = DefaultNotamTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		weather:        weather,
		sources:        sources,
		weatherTimeout: cfg.WeatherTimeout,
		notamTimeout:   cfg.NotamTimeout,
		logger:         logger,
	}
}

// FetchAll runs the weather and NOTAM fetches concurrently
func (f *Fetcher) FetchAll(ctx context.Context, icaos []string, window TimeWindow) ([]WeatherSummary, []NotamAlert) {
	var (
		weather []WeatherSummary
		notams  []NotamAlert
		g       errgroup.Group
	)
	g.Go(func() error {
		weather = f.FetchWeatherOrDefault(ctx, icaos)
		return nil
	})
	g.Go(func() error {
		notams = f.FetchNotamsOrDefault(ctx, icaos, window)
		return nil
	})
	_ = g.Wait()
	return weather, notams
}

// FetchWeatherOrDefault returns one summary per ICAO, in input order.
// ICAOs without a report get DefaultWeather.
func (f *Fetcher) FetchWeatherOrDefault(ctx context.Context, icaos []string) []WeatherSummary {
	byICAO := make(map[string]WeatherSummary, len(icaos))

	if f.weather != nil && len(icaos) > 0 {
		callCtx, cancel := context.WithTimeout(ctx, f.weatherTimeout)
		reports, err := f.weather.FetchReports(callCtx, icaos)
		cancel()
		if err != nil {
			f.logger.Warn("weather fetch failed, using marginal defaults", "icaos", icaos, "error", err)
		}
		for _, r := range reports {
			// keep the first (latest) observation per station
			if _, exists := byICAO[r.ICAO]; !exists {
				byICAO[r.ICAO] = ClassifyWeather(r)
			}
		}
	}

	out := make([]WeatherSummary, 0, len(icaos))
	for _, icao := range icaos {
		s, ok := byICAO[icao]
		if !ok {
			s = DefaultWeather(icao)
		}
		out = append(out, s)
	}
	return out
}

// FetchNotamsOrDefault queries every source concurrently with its own timeout.
// A failing source contributes nothing; alerts are classified, filtered to the ICAOs
// and window, and deduplicated by id in source order.
func (f *Fetcher) FetchNotamsOrDefault(ctx context.Context, icaos []string, window TimeWindow) []NotamAlert {
	if len(f.sources) == 0 || len(icaos) == 0 {
		return []NotamAlert{}
	}

	wanted := make(map[string]bool, len(icaos))
	for _, icao := range icaos {
		wanted[icao] = true
	}

	perSource := make([][]NotamAlert, len(f.sources))
	var g errgroup.Group
	for i, source := range f.sources {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, f.notamTimeout)
			defer cancel()

			raws, err := source.FetchNotams(callCtx, icaos, window)
			if err != nil {
				f.logger.Warn("notam source failed", "source", source.Name(), "error", err)
				return nil
			}

			alerts := make([]NotamAlert, 0, len(raws))
			for _, raw := range raws {
				alert := ClassifyNotam(raw)
				if alert.Source == "" {
					alert.Source = source.Name()
				}
				if !wanted[alert.ICAO] || !window.Overlaps(alert) {
					continue
				}
				alerts = append(alerts, alert)
			}
			perSource[i] = alerts
			return nil
		})
	}
	_ = g.Wait()

	return DedupeNotams(perSource...)
}
