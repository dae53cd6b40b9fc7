package recommender

import (
	"context"

	"github.com/nguyentantai21042004/meeting-flow/internal/document"
)

// Recommender turns the latest published summary into course
// suggestions. Soft failures (retrieval, generation, timeout) are
// encoded in the result's Error field; a non-nil error is returned only
// when no summary exists to work from.
type Recommender interface {
	Enrich(ctx context.Context, summaryPath string) (document.EnrichmentResult, error)
}

// Catalog retrieves course descriptions relevant to a query. The
// production retrieval backend lives behind this seam; tests and small
// deployments use the file-backed catalog in this package.
type Catalog interface {
	Search(query string, k int) []string
}
