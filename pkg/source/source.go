package source

import (
	"context"
	"errors"

	"github.com/arremate/leilao-finder/pkg/types"
)

// ErrUnavailable is returned when the listing supplier cannot be reached.
// Callers surface it as a retryable load failure, never as a crash.
var ErrUnavailable = errors.New("listing source unavailable")

// Source supplies the raw item collection and the facet vocabularies. The
// engine treats it as an external collaborator: everything downstream works
// on the returned slice in memory.
type Source interface {
	ListItems(ctx context.Context, contentType types.ContentType) ([]types.Item, error)
	GetOptionsForCategory(category string, contentType types.ContentType) []string
}
