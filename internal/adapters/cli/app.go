package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/api"
	"github.com/andrescamacho/aeroroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/aeroroute-go/internal/adapters/notam"
	"github.com/andrescamacho/aeroroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/aeroroute-go/internal/adapters/pubsub"
	"github.com/andrescamacho/aeroroute-go/internal/adapters/weather"
	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/application/reference"
	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/database"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/logging"
)

// application holds everything a command needs, built once per invocation
type application struct {
	cfg          *config.Config
	logger       *slog.Logger
	db           *gorm.DB
	mediator     common.Mediator
	airportRepo  *persistence.GormAirportRepository
	aircraftRepo *persistence.GormAircraftRepository
	publisher    *pubsub.RedisPublisher
	logCloser    io.Closer
}

type appOptions struct {
	// metrics registers prometheus collectors (serve only)
	metrics bool
	// publish connects the redis plan publisher when enabled in config
	publish bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newApplication wires config, logging, storage, upstream feeds and the mediator
func newApplication(ctx context.Context, opts appOptions) (*application, error) {
	// 1. Configuration and logging
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	app := &application{cfg: cfg, logger: logger, logCloser: logCloser}

	// 2. Database and repositories
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db
	app.airportRepo = persistence.NewGormAirportRepository(db)
	app.aircraftRepo = persistence.NewGormAircraftRepository(db)
	logger.Debug("database connected", "type", cfg.Database.Type)

	// 3. Metrics
	var (
		planCollector    *metrics.PlanMetricsCollector
		requestCollector *metrics.RequestMetricsCollector
	)
	if opts.metrics && cfg.Metrics.Enabled {
		metrics.InitRegistry()
		planCollector = metrics.NewPlanMetricsCollector()
		requestCollector = metrics.NewRequestMetricsCollector()
		upstreamCollector := metrics.NewUpstreamMetricsCollector()
		for _, register := range []func() error{planCollector.Register, requestCollector.Register, upstreamCollector.Register} {
			if err := register(); err != nil {
				app.Close()
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
		metrics.SetGlobalUpstreamCollector(upstreamCollector)
	}

	// 4. Plan publisher (optional, never fatal)
	if opts.publish && cfg.Redis.Enabled {
		publisher, err := pubsub.NewRedisPublisher(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, plans will not be published", "addr", cfg.Redis.Addr, "error", err)
		} else {
			app.publisher = publisher
		}
	}

	// 5. Domain services
	clock := shared.NewRealClock()
	directory := airport.NewDirectory(app.airportRepo)
	optimizer := routing.NewOptimizer(directory, cfg.Routing.Tuning(), routing.WithLogger(logger))
	fetcher := newEnvironmentFetcher(cfg, clock, logger)

	// 6. Mediator
	med := common.NewMediator()
	med.Use(common.LoggingMiddleware)
	if requestCollector != nil {
		med.Use(metrics.PrometheusMiddleware(requestCollector))
	}

	var handlerOpts []routeplan.HandlerOption
	if planCollector != nil {
		handlerOpts = append(handlerOpts, routeplan.WithRecorder(planCollector))
	}
	if app.publisher != nil {
		handlerOpts = append(handlerOpts, routeplan.WithPublisher(app.publisher))
	}

	registrations := []error{
		common.RegisterHandler[*routeplan.ComputeRoutePlanCommand](med,
			routeplan.NewComputeRoutePlanHandler(app.aircraftRepo, directory, optimizer, fetcher, clock, handlerOpts...)),
		common.RegisterHandler[*reference.GetAirportQuery](med, reference.NewGetAirportHandler(directory)),
		common.RegisterHandler[*reference.ImportAirportsCommand](med, reference.NewImportAirportsHandler(app.airportRepo)),
		common.RegisterHandler[*reference.GetAircraftQuery](med, reference.NewGetAircraftHandler(app.aircraftRepo)),
		common.RegisterHandler[*reference.SaveAircraftCommand](med, reference.NewSaveAircraftHandler(app.aircraftRepo)),
	}
	for _, err := range registrations {
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register handler: %w", err)
		}
	}
	app.mediator = med

	return app, nil
}

// newEnvironmentFetcher builds the weather provider and the enabled NOTAM sources
func newEnvironmentFetcher(cfg *config.Config, clock shared.Clock, logger *slog.Logger) *environment.Fetcher {
	var provider environment.WeatherProvider
	if cfg.Weather.Enabled {
		client := api.NewClient(api.ConfigFromUpstream("weather", cfg.Weather.UpstreamConfig), clock)
		provider = weather.NewMetarClient(client, logger)
	}

	var sources []environment.NotamSource
	if cfg.Notam.Enabled {
		if cfg.Notam.FAA.Enabled {
			cc := api.ConfigFromUpstream(notam.SourceFAA, cfg.Notam.FAA.UpstreamConfig)
			cc.Headers = map[string]string{
				"client_id":     cfg.Notam.FAA.ClientID,
				"client_secret": cfg.Notam.FAA.ClientSecret,
			}
			sources = append(sources, notam.NewFAASource(api.NewClient(cc, clock)))
		}
		if cfg.Notam.AIM.Enabled {
			sources = append(sources, notam.NewAIMSource(
				api.NewClient(api.ConfigFromUpstream(notam.SourceAIM, cfg.Notam.AIM.UpstreamConfig), clock)))
		}
		if cfg.Notam.TFR.Enabled {
			sources = append(sources, notam.NewTFRSource(
				api.NewClient(api.ConfigFromUpstream(notam.SourceTFR, cfg.Notam.TFR.UpstreamConfig), clock)))
		}
	}

	return environment.NewFetcher(provider, sources, environment.FetcherConfig{
		WeatherTimeout: cfg.Weather.FetchTimeout,
		NotamTimeout:   cfg.Notam.FetchTimeout,
	}, logger)
}

// context attaches the application logger
func (a *application) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.logger)
}

// Close releases the database, publisher and log file
func (a *application) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close redis publisher", "error", err)
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("failed to close database", "error", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
