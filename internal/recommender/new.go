package recommender

import (
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

type implRecommender struct {
	apiKeys    []string
	currentKey int
	model      string
	catalog    Catalog
	logger     logger.Logger
}

// New creates a Recommender backed by Gemini and the given catalog.
// A nil catalog is allowed; suggestions are then generated from the
// summary alone.
func New(apiKeys []string, model string, catalog Catalog, log logger.Logger) Recommender {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implRecommender{
		apiKeys: apiKeys,
		model:   model,
		catalog: catalog,
		logger:  log.WithName("recommender"),
	}
}
