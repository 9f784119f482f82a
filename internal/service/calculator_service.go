// Package service is the boundary the fib shells call into. It applies the
// configured request limits, selects the single-value backend, and records
// metrics, traces and debug logs around every engine call.
package service

//go:generate mockgen -source=calculator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"math/big"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
	"github.com/agbru/fibrange/internal/logging"
)

var (
	// ErrMaxValueExceeded is returned when an index exceeds Config.MaxN.
	ErrMaxValueExceeded = errors.New("maximum n value exceeded")
	// ErrRangeTooLong is returned when a range holds more than
	// Config.MaxRangeLen values.
	ErrRangeTooLong = errors.New("range too long")
)

const tracerName = "github.com/agbru/fibrange/internal/service"

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibrange_calculations_total",
			Help: "Total number of Fibonacci calculations by operation and outcome",
		},
		[]string{"op", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fibrange_calculation_duration_seconds",
			Help:    "Duration of Fibonacci calculations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
		[]string{"op"},
	)
	rangeValuesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fibrange_range_values_total",
		Help: "Total number of values produced by range calculations",
	})
)

// Service computes Fibonacci values on behalf of a shell.
type Service interface {
	// Single returns F(n).
	Single(ctx context.Context, n uint64) (*big.Int, error)
	// Range returns F(start)..F(end); the result is empty when end < start.
	Range(ctx context.Context, start, end uint64) ([]*big.Int, error)
}

// Config holds the service limits and engine tuning.
type Config struct {
	// MaxN is the largest index accepted, 0 for no limit. For ranges it
	// bounds end.
	MaxN uint64
	// MaxRangeLen is the largest number of values a range may hold, 0 for
	// no limit.
	MaxRangeLen uint64
	// Workers is passed to the range generator; 0 selects GOMAXPROCS.
	Workers int
	// Backend names the single-value backend, "" for the default.
	Backend string
}

// CalculatorService implements Service on top of the fibonacci package.
type CalculatorService struct {
	cfg    Config
	single fibonacci.SingleFunc
	logger logging.Logger
}

var _ Service = (*CalculatorService)(nil)

// New creates a CalculatorService.
//
// Parameters:
//   - cfg: Limits and tuning.
//   - logger: Receives one debug event per calculation (nil discards).
//
// Returns:
//   - *CalculatorService: The service.
//   - error: A ConfigError if cfg.Backend is not registered.
func New(cfg Config, logger logging.Logger) (*CalculatorService, error) {
	if cfg.Backend == "" {
		cfg.Backend = fibonacci.DefaultBackend
	}
	single, err := fibonacci.Backend(cfg.Backend)
	if err != nil {
		return nil, apperrors.NewConfigError("%v (available: %v)", err, fibonacci.Backends())
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &CalculatorService{cfg: cfg, single: single, logger: logger}, nil
}

// Single validates n against MaxN and computes F(n) with the configured
// backend.
func (s *CalculatorService) Single(ctx context.Context, n uint64) (result *big.Int, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fibrange.single",
		trace.WithAttributes(attribute.String("fib.n", strconv.FormatUint(n, 10))))
	defer span.End()

	start := time.Now()
	defer func() { s.observe("single", start, err, span, logging.Uint64("n", n)) }()

	if s.cfg.MaxN > 0 && n > s.cfg.MaxN {
		return nil, apperrors.NewLimitError(ErrMaxValueExceeded, "n", n, s.cfg.MaxN)
	}
	result, err = s.single(ctx, n)
	if err != nil {
		return nil, apperrors.NewCalculationError("single", err)
	}
	span.SetAttributes(attribute.Int("fib.bits", result.BitLen()))
	return result, nil
}

// Range validates the request against MaxN and MaxRangeLen and computes the
// sequence. An inverted range is not an error: it yields an empty slice.
func (s *CalculatorService) Range(ctx context.Context, start, end uint64) (values []*big.Int, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fibrange.range",
		trace.WithAttributes(
			attribute.String("fib.start", strconv.FormatUint(start, 10)),
			attribute.String("fib.end", strconv.FormatUint(end, 10)),
		))
	defer span.End()

	began := time.Now()
	defer func() {
		s.observe("range", began, err, span,
			logging.Uint64("start", start), logging.Uint64("end", end), logging.Int("count", len(values)))
	}()

	if end >= start {
		if s.cfg.MaxN > 0 && end > s.cfg.MaxN {
			return nil, apperrors.NewLimitError(ErrMaxValueExceeded, "end", end, s.cfg.MaxN)
		}
		if span := end - start; s.cfg.MaxRangeLen > 0 && span >= s.cfg.MaxRangeLen {
			return nil, apperrors.NewLimitError(ErrRangeTooLong, "length", span+1, s.cfg.MaxRangeLen)
		}
	}

	values, err = fibonacci.RangeContext(ctx, start, end, fibonacci.Options{Workers: s.cfg.Workers})
	if err != nil {
		return nil, apperrors.NewCalculationError("range", err)
	}
	rangeValuesTotal.Add(float64(len(values)))
	span.SetAttributes(attribute.Int("fib.count", len(values)))
	return values, nil
}

// observe records the outcome of one calculation.
func (s *CalculatorService) observe(op string, start time.Time, err error, span trace.Span, fields ...logging.Field) {
	duration := time.Since(start)
	status := statusOf(err)
	calculationsTotal.WithLabelValues(op, status).Inc()
	calculationDuration.WithLabelValues(op).Observe(duration.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}

	fields = append(fields, logging.String("status", status), logging.Duration("duration", duration))
	if err != nil {
		fields = append(fields, logging.Err(err))
	}
	s.logger.Debug(op+" calculation completed", fields...)
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrLimitExceeded):
		return "rejected"
	case apperrors.IsContextError(err):
		return "canceled"
	default:
		return "error"
	}
}
