// Package sheets reads effort sheets from Google Sheets.
package sheets

import (
	"context"
	"os"
	"regexp"
	"time"

	"github.com/opsdesk/portal/internal/config"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/httpclient"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/sentry"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Reader reads a cell range of a spreadsheet as formatted strings
type Reader interface {
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

var spreadsheetIDPattern = regexp.MustCompile(`.*[^-\w]([-\w]{25,})[^-\w]?.*`)

// ExtractSpreadsheetID pulls the spreadsheet id out of a sheet URL
func ExtractSpreadsheetID(url string) (string, error) {
	m := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", ierr.NewError("no spreadsheet id in url").
			WithHint("The effort sheet URL is not a valid Google Sheets link").
			WithReportableDetails(map[string]any{
				"url": url,
			}).
			Mark(ierr.ErrValidation)
	}
	return m[1], nil
}

// NewReader returns the Google reader, or a reader failing every read with
// ErrConfiguration when no credentials file is configured
func NewReader(cfg *config.Configuration, client *httpclient.DefaultClient, sentrySvc *sentry.Service, log *logger.Logger) (Reader, error) {
	if cfg.EffortSheet.CredentialsFile == "" {
		log.Warnw("effort sheet credentials not configured, sheet reads will fail")
		return unconfiguredReader{}, nil
	}
	r, err := NewGoogleReader(context.Background(), cfg, client, sentrySvc, log)
	if err != nil {
		return nil, err
	}
	return NewRateLimitedReader(r, cfg.EffortSheet.ReadsPerMinute), nil
}

type rateLimitedReader struct {
	Reader
	limiter *rate.Limiter
}

// NewRateLimitedReader spaces reads of r evenly to at most perMinute reads a
// minute. A non positive perMinute returns r unchanged.
func NewRateLimitedReader(r Reader, perMinute int) Reader {
	if perMinute <= 0 {
		return r
	}
	return &rateLimitedReader{
		Reader:  r,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *rateLimitedReader) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Effort sheet read was cancelled").
			Mark(ierr.ErrHTTPClient)
	}
	return r.Reader.ReadRange(ctx, spreadsheetID, rng)
}

type unconfiguredReader struct{}

func (unconfiguredReader) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	return nil, ierr.NewError("effort sheet credentials not configured").
		WithHint("Set effortsheet.credentials_file to a service account json file").
		Mark(ierr.ErrConfiguration)
}

type googleReader struct {
	svc    *gsheets.Service
	sentry *sentry.Service
	logger *logger.Logger
}

// NewGoogleReader authenticates with the service account in the effort sheet
// credentials file and routes requests through the retrying http client.
func NewGoogleReader(ctx context.Context, cfg *config.Configuration, client *httpclient.DefaultClient, sentrySvc *sentry.Service, log *logger.Logger) (Reader, error) {
	if cfg.EffortSheet.CredentialsFile == "" {
		return nil, ierr.NewError("effort sheet credentials not configured").
			WithHint("Set effortsheet.credentials_file to a service account json file").
			Mark(ierr.ErrConfiguration)
	}

	creds, err := os.ReadFile(cfg.EffortSheet.CredentialsFile)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read the effort sheet credentials file").
			Mark(ierr.ErrConfiguration)
	}

	jwtCfg, err := google.JWTConfigFromJSON(creds, gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The effort sheet credentials file is not a valid service account key").
			Mark(ierr.ErrInvalidConfiguration)
	}

	authCtx := context.WithValue(ctx, oauth2.HTTPClient, client.StandardClient())
	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(authCtx)))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create the sheets client").
			Mark(ierr.ErrSystem)
	}

	return &googleReader{svc: svc, sentry: sentrySvc, logger: log}, nil
}

func (r *googleReader) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	span, ctx := r.sentry.StartSheetSpan(ctx, spreadsheetID, rng)
	if span != nil {
		defer span.Finish()
	}

	resp, err := r.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		r.logger.Errorw("failed to read sheet range",
			"spreadsheet_id", spreadsheetID,
			"range", rng,
			"error", err,
		)
		return nil, ierr.WithError(err).
			WithHint("Failed to read the effort sheet").
			WithReportableDetails(map[string]any{
				"spreadsheet_id": spreadsheetID,
				"range":          rng,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return stringRows(resp.Values), nil
}

func stringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if s, ok := v.(string); ok {
				cells[j] = s
			}
		}
		rows[i] = cells
	}
	return rows
}
