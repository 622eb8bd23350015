package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"quotationeditor/grid"
	"quotationeditor/metrics"
)

// DefaultSearchLimit caps the number of candidates a search returns.
const DefaultSearchLimit = 20

// CatalogSearch answers in-progress code and description text from the
// price_catalog collection. It implements grid.CatalogSearcher.
type CatalogSearch struct {
	app    core.App
	logger *zap.Logger
	limit  int
}

// NewCatalogSearch creates a searcher. A non-positive limit uses DefaultSearchLimit.
func NewCatalogSearch(app core.App, logger *zap.Logger, limit int) *CatalogSearch {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &CatalogSearch{app: app, logger: logger, limit: limit}
}

// Search returns ranked catalog candidates for query. An empty query returns
// the first entries by code. Otherwise entries whose code, description or
// category contain the query are ranked: code prefix first, then
// description prefix, then the rest, ties broken by code.
func (s *CatalogSearch) Search(ctx context.Context, query string) ([]grid.Candidate, error) {
	start := time.Now()
	candidates, err := s.search(ctx, strings.TrimSpace(query))
	metrics.RecordSearch(len(candidates), time.Since(start), err)
	if err != nil {
		s.logger.Warn("catalog search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("catalog search",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Duration("took", time.Since(start)),
	)
	return candidates, nil
}

func (s *CatalogSearch) search(ctx context.Context, query string) ([]grid.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if query == "" {
		records, err := s.app.FindRecordsByFilter("price_catalog", "id != ''", "code", s.limit, 0)
		if err != nil {
			return nil, fmt.Errorf("catalog search: list defaults: %w", err)
		}
		return toCandidates(records), nil
	}

	records, err := s.app.FindRecordsByFilter(
		"price_catalog",
		"code ~ {:q} || description ~ {:q} || category ~ {:q}",
		"code",
		0,
		0,
		map[string]any{"q": query},
	)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := toCandidates(records)
	rankCandidates(candidates, query)
	if len(candidates) > s.limit {
		candidates = candidates[:s.limit]
	}
	return candidates, nil
}

// rankCandidates orders candidates by match quality against query.
func rankCandidates(candidates []grid.Candidate, query string) {
	q := strings.ToLower(query)
	rank := func(c grid.Candidate) int {
		switch {
		case strings.HasPrefix(strings.ToLower(c.Code), q):
			return 0
		case strings.HasPrefix(strings.ToLower(c.Description), q):
			return 1
		}
		return 2
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := rank(candidates[i]), rank(candidates[j])
		if ri != rj {
			return ri < rj
		}
		return candidates[i].Code < candidates[j].Code
	})
}

func toCandidates(records []*core.Record) []grid.Candidate {
	out := make([]grid.Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, grid.Candidate{
			Code:          r.GetString("code"),
			Description:   r.GetString("description"),
			Unit:          r.GetString("unit"),
			MaterialPrice: r.GetFloat("material_price"),
			LaborPrice:    r.GetFloat("labor_price"),
			Category:      r.GetString("category"),
		})
	}
	return out
}
