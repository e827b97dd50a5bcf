package sequence

import (
	"context"
)

// Repository hands out document sequence numbers. Counters are keyed by
// (company, prefix, date code) and must increment atomically so concurrent
// writers never see the same value. Platform-level documents use an empty
// company id.
type Repository interface {
	// Next returns the next sequence value for the given counter,
	// starting at 1.
	Next(ctx context.Context, companyID, prefix, dateCode string) (int64, error)
}
