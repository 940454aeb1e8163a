package sheets

import (
	"context"

	"paystub/internal/core"
)

// RecordWriter appends one paycheck record to the export target.
type RecordWriter interface {
	Append(ctx context.Context, record core.PaycheckRecord) (rowRef string, err error)
}
