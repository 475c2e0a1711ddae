package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ladder/config"
	"ladder/events"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// MetricsProvider manages OpenTelemetry metrics for the ladder service
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	enabled       bool
	mu            sync.RWMutex

	reportsCounter       metric.Int64Counter
	matchesCounter       metric.Int64Counter
	rankSwapsCounter     metric.Int64Counter
	playersJoinedCounter metric.Int64Counter
	commandsCounter      metric.Int64Counter
	natsPublishedCounter metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	return mp.initialize(ctx, nil)
}

// initialize builds the meter provider. A non-nil reader replaces the
// configured exporter.
func (mp *MetricsProvider) initialize(ctx context.Context, reader sdkmetric.Reader) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}

	if !mp.config.OTelEnabled && reader == nil {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	if reader == nil {
		var exporter sdkmetric.Exporter
		switch mp.config.OTelExporterType {
		case "console":
			exporter, err = stdoutmetric.New()
			if err != nil {
				return fmt.Errorf("failed to create console exporter: %w", err)
			}
			log.Info("Using console metric exporter")

		case "otlp":
			dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			exporter, err = otlpmetricgrpc.New(dialCtx,
				otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
				otlpmetricgrpc.WithInsecure(),
			)
			if err != nil {
				return fmt.Errorf("failed to create OTLP exporter: %w", err)
			}
			log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

		case "none":
			log.Info("Metrics export disabled (exporter_type='none')")
			mp.initialized = true
			return nil

		default:
			return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
		}

		reader = sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
		)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("ladder")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.enabled = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&mp.reportsCounter, ReportsInterpretedTotal, "Total number of match reports interpreted"},
		{&mp.matchesCounter, MatchesRecordedTotal, "Total number of match results recorded"},
		{&mp.rankSwapsCounter, RankSwapsTotal, "Total number of ladder rank swaps"},
		{&mp.playersJoinedCounter, PlayersJoinedTotal, "Total number of players added to the ladder"},
		{&mp.commandsCounter, CommandsHandledTotal, "Total number of Discord commands handled"},
		{&mp.natsPublishedCounter, NATSMessagesPublishedTotal, "Total number of NATS messages published"},
	}

	for _, c := range counters {
		*c.target, err = mp.meter.Int64Counter(
			c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
	}

	return nil
}

// Shutdown flushes and stops the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordReportInterpreted records a /report attempt and how it ended
func (mp *MetricsProvider) RecordReportInterpreted(outcome string) {
	if !mp.isEnabled() {
		return
	}
	mp.reportsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelOutcome, outcome)),
	)
}

// RecordCommand records a handled Discord command
func (mp *MetricsProvider) RecordCommand(command string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelCommand, command)),
	)
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}
	mp.natsPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelEventType, eventType)),
	)
}

// HandleEvent counts committed ladder events. Subscribe it to the event bus.
func (mp *MetricsProvider) HandleEvent(ctx context.Context, event events.Event) {
	if !mp.isEnabled() {
		return
	}

	switch e := event.(type) {
	case events.PlayerJoinedEvent:
		mp.playersJoinedCounter.Add(ctx, 1)

	case events.MatchRecordedEvent:
		gameType := GameTypeFriendly
		if e.IsLadderGame {
			gameType = GameTypeLadder
		}
		mp.matchesCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String(LabelGameType, gameType)),
		)
		if e.RanksSwapped {
			mp.rankSwapsCounter.Add(ctx, 1)
		}
	}
}

func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.enabled
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider, nil before initialization
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
