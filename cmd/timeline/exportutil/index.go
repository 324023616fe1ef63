package exportutil

import (
	"context"

	"github.com/chaisql/locationhistory/internal/observability"
	"github.com/chaisql/locationhistory/internal/pointstore"
	"github.com/cockroachdb/errors"
)

// Index stores the positions of the export at path in the point store at
// storePath. Points already present are not duplicated.
func Index(ctx context.Context, path, storePath string, opts ReadOptions) (sum observability.Summary, err error) {
	s, err := pointstore.Open(storePath, nil)
	if err != nil {
		return sum, err
	}
	defer func() {
		err = errors.CombineErrors(err, s.Close())
	}()

	return ReadFile(ctx, path, opts, s.Put)
}
