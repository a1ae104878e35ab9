// Package sheets mirrors dashboard snapshots into spreadsheets.
package sheets

import (
	"context"

	"findash/internal/core"
)

// DashboardWriter publishes a full dashboard snapshot to an external sheet.
// Each call replaces what the previous call wrote.
type DashboardWriter interface {
	WriteDashboard(ctx context.Context, d core.Dashboard) error
}
