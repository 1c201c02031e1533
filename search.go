package mlflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tarek7669/mlflow/entities"
	"github.com/tarek7669/mlflow/internal/layout"
	"github.com/tarek7669/mlflow/internal/pagetoken"
	"github.com/tarek7669/mlflow/internal/record"
	"github.com/tarek7669/mlflow/query"
)

// Search pagination bounds.
const (
	DefaultSearchMaxResults = 100
	MaxSearchMaxResults     = 10000
)

// SearchLoggedModelsRequest describes one page of a model search.
//
// ExperimentIDs scopes the scan; an empty list matches nothing. Filter is
// an SQL-like conjunction over attributes and tags, OrderBy a list of
// "key [ASC|DESC]" clauses. MaxResults of zero means the default page
// size. PageToken continues a previous search and must carry the same
// filter and ordering to be meaningful.
type SearchLoggedModelsRequest struct {
	ExperimentIDs []string
	Filter        string
	OrderBy       []string
	MaxResults    int
	PageToken     string
}

// SearchLoggedModels scans the requested experiments and returns the
// matching models in order, one page at a time. The second result is the
// token for the next page, empty when the sequence is exhausted.
//
// Experiment ids that do not exist are skipped, not errors; deleted
// experiments still contribute their models.
func (fs *FileStore) SearchLoggedModels(ctx context.Context, req SearchLoggedModelsRequest) (models []*entities.LoggedModel, nextPageToken string, err error) {
	start := time.Now()
	scanned := 0
	defer func() {
		fs.opts.metricsCollector.RecordSearch(scanned, len(models), time.Since(start), err)
		fs.opts.logger.LogSearch(ctx, len(req.ExperimentIDs), scanned, len(models), err)
	}()

	// The whole request is validated before the first read.
	clauses, err := query.ParseFilter(req.Filter)
	if err != nil {
		return nil, "", translateError(err)
	}
	order, err := query.ParseOrderBy(req.OrderBy)
	if err != nil {
		return nil, "", translateError(err)
	}
	maxResults := req.MaxResults
	switch {
	case maxResults == 0:
		maxResults = DefaultSearchMaxResults
	case maxResults < 0:
		return nil, "", invalidArgumentf("Invalid value for max_results. It must be a positive integer, but got %d", req.MaxResults)
	case maxResults > MaxSearchMaxResults:
		// Oversized page requests are satisfied at the server cap.
		maxResults = MaxSearchMaxResults
	}
	offset, err := pagetoken.Decode(req.PageToken)
	if err != nil {
		return nil, "", invalidArgumentf("%s", err.Error())
	}

	candidates, err := fs.collectCandidates(ctx, req.ExperimentIDs)
	if err != nil {
		return nil, "", translateError(err)
	}
	scanned = len(candidates)

	matched := make([]*entities.LoggedModel, 0, len(candidates))
	for _, model := range candidates {
		if query.Matches(model, clauses) {
			matched = append(matched, model)
		}
	}
	query.Sort(matched, order)

	if offset >= len(matched) {
		return []*entities.LoggedModel{}, "", nil
	}
	end := offset + maxResults
	if end > len(matched) {
		end = len(matched)
	}
	models = matched[offset:end]
	if end < len(matched) {
		nextPageToken = pagetoken.Encode(end)
	}
	return models, nextPageToken, nil
}

// collectCandidates hydrates every model record under the requested
// experiments. Unknown experiment ids are skipped; corrupt records are
// logged and skipped rather than failing the whole scan.
func (fs *FileStore) collectCandidates(ctx context.Context, experimentIDs []string) ([]*entities.LoggedModel, error) {
	var dirs []string
	seen := map[string]bool{}
	for _, expID := range experimentIDs {
		if expID == "" || seen[expID] {
			continue
		}
		seen[expID] = true
		if _, err := fs.readExperiment(ctx, expID); err != nil {
			var notFound *layout.ErrExperimentNotFound
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		expDirs, err := fs.layout.ModelDirs(ctx, expID)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, expDirs...)
	}
	if len(dirs) == 0 {
		return nil, nil
	}

	var (
		mu     sync.Mutex
		models = make([]*entities.LoggedModel, 0, len(dirs))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fs.opts.hydrateConcurrency)
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			if fs.opts.scanLimiter != nil {
				if err := fs.opts.scanLimiter.Wait(gctx); err != nil {
					return err
				}
			}
			model, err := fs.codec.HydrateModel(gctx, dir)
			if err != nil {
				var corrupt *record.CorruptError
				if errors.As(err, &corrupt) {
					fs.opts.logger.WarnContext(gctx, "skipping malformed model record",
						"dir", dir,
						"error", err,
					)
					return nil
				}
				return err
			}
			mu.Lock()
			models = append(models, model)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}
