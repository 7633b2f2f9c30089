package ports

import "context"

// Suggester is the external prompt collaborator that turns a free-text query
// into candidate product names. Implementations should treat failures as
// recoverable; callers degrade to an empty suggestion list.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}
