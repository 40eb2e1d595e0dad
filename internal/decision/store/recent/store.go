// Package recent caches the latest decision record per case and action.
// Replaying a cached record keeps repeated evaluations of an unchanged case
// cheap and, more importantly, consistent across quick successive calls.
package recent

import (
	"context"

	"fairgate/internal/decision"
	pkgerrors "fairgate/pkg/domain-errors"
)

// ErrNotFound keeps cache-miss signaling consistent across implementations.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "no recent decision")

// Store caches decision records keyed by case and action.
type Store interface {
	Get(ctx context.Context, caseID, action string) (*decision.Record, error)
	Put(ctx context.Context, record *decision.Record) error
}
