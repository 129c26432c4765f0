package ports

import (
	"context"

	"leanfunnel/domain/enquiry"
)

// RowSource delivers the raw enquiry worksheet.
// Implementations must return rows in stable source order.
type RowSource interface {
	FetchSheet(ctx context.Context) (*enquiry.Sheet, error)

	// Name identifies the source in logs and snapshots, e.g. "gsheets:<id>/System_Logic"
	Name() string
}
