package sentry

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/logger"
	"go.uber.org/fx"
)

const flushTimeout = 2 * time.Second

// Service reports errors and traces to sentry. Every method is a no-op
// while reporting is disabled.
type Service struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterHooks initialises the sentry client on start and flushes it on stop
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.init()
		},
		OnStop: func(ctx context.Context) error {
			if svc.cfg.Sentry.Enabled {
				svc.logger.Info("flushing sentry events")
				sentry.Flush(flushTimeout)
			}
			return nil
		},
	})
}

func (s *Service) init() error {
	if !s.cfg.Sentry.Enabled {
		s.logger.Info("sentry is disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              s.cfg.Sentry.DSN,
		Environment:      s.cfg.Sentry.Environment,
		EnableTracing:    true,
		TracesSampleRate: s.cfg.Sentry.SampleRate,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span != nil && strings.HasSuffix(ctx.Span.Name, "/health") {
				return 0.0
			}
			return s.cfg.Sentry.SampleRate
		}),
	})
	if err != nil {
		s.logger.Errorw("failed to initialize sentry", "error", err)
		return err
	}

	s.logger.Infow("sentry initialized",
		"environment", s.cfg.Sentry.Environment,
		"sample_rate", s.cfg.Sentry.SampleRate,
	)
	return nil
}

// StartTransaction starts a transaction for work that does not run inside a
// request, such as a scheduled effort sheet sync
func (s *Service) StartTransaction(ctx context.Context, name string, options ...sentry.SpanOption) (*sentry.Span, context.Context) {
	if !s.cfg.Sentry.Enabled {
		return nil, ctx
	}

	if sentry.GetHubFromContext(ctx) == nil {
		ctx = sentry.SetHubOnContext(ctx, sentry.CurrentHub().Clone())
	}

	opts := append([]sentry.SpanOption{
		sentry.WithOpName(name),
		sentry.WithTransactionSource(sentry.SourceCustom),
	}, options...)

	tx := sentry.StartTransaction(ctx, name, opts...)
	return tx, tx.Context()
}

// StartSheetSpan starts a span around a spreadsheet API call
func (s *Service) StartSheetSpan(ctx context.Context, spreadsheetID, readRange string) (*sentry.Span, context.Context) {
	if !s.cfg.Sentry.Enabled {
		return nil, ctx
	}

	span := sentry.StartSpan(ctx, "sheets.values.get")
	span.Description = "Reading " + readRange
	span.Op = "http.client"
	span.SetData("spreadsheet_id", spreadsheetID)
	span.SetData("range", readRange)
	return span, span.Context()
}

// CaptureProjectFailure reports a failure scoped to a single project of a batch run
func (s *Service) CaptureProjectFailure(ctx context.Context, projectID string, err error) {
	if !s.cfg.Sentry.Enabled || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("project_id", projectID)
		hub.CaptureException(err)
	})
}
