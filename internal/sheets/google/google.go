package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"findash/internal/core"
	"findash/internal/log"
	ports "findash/internal/sheets"
)

// Client mirrors dashboards into one tab per fiscal year.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base tab name without year (e.g. "Dashboard"); the year is prefixed.
	sheetBase string
	logger    *log.Logger
}

var _ ports.DashboardWriter = (*Client)(nil)

// New creates a Sheets client. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS; sheetBase defaults to "Dashboard".
func New(ctx context.Context, spreadsheetID, sheetBase string, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSheets)

	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetBase = strings.TrimSpace(sheetBase)
	if sheetBase == "" {
		sheetBase = "Dashboard"
	}

	svc, err := newSheetsService(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
		logger:        logger,
	}, nil
}

// newSheetsService initializes a Sheets service from service account
// credentials.
func newSheetsService(ctx context.Context, logger *log.Logger) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		logger.DebugContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		logger.DebugContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteDashboard writes every block of d into the tab of d's fiscal year.
// Blocks are written concurrently; the first failure is returned.
func (c *Client) WriteDashboard(ctx context.Context, d core.Dashboard) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	tab := c.sheetName(d)

	g, gctx := errgroup.WithContext(ctx)
	for _, rng := range valueRanges(tab, ports.Blocks(d)) {
		rng := rng
		g.Go(func() error {
			_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng.Range, rng).
				ValueInputOption("RAW").
				Context(gctx).
				Do()
			if err != nil {
				return fmt.Errorf("update %s: %w", rng.Range, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Dashboard written to sheet",
		log.FieldSheetsRef, tab, log.FieldRevision, d.Revision)
	return nil
}

func (c *Client) sheetName(d core.Dashboard) string {
	year := d.AsOf.Year()
	if len(d.Monthly) > 0 {
		year = d.Monthly[0].Period.Year
	}
	return yearPrefixedName(c.sheetBase, year)
}

func valueRanges(tab string, blocks []ports.Block) []*gsheet.ValueRange {
	out := make([]*gsheet.ValueRange, 0, len(blocks))
	for _, b := range blocks {
		rows := make([][]interface{}, len(b.Rows))
		for i, r := range b.Rows {
			rows[i] = r
		}
		out = append(out, &gsheet.ValueRange{
			Range:          fmt.Sprintf("'%s'!%s", tab, b.Anchor),
			MajorDimension: "ROWS",
			Values:         rows,
		})
	}
	return out
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
