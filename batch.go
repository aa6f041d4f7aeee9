package filterscope

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sharedindex/filterscope/filter"
	"github.com/sharedindex/filterscope/mapping"
)

// ConvertAll converts a batch of textual filters against the same allowed
// types and mapping. Results are positional: results[i] is the converted
// form of texts[i], nil where texts[i] was empty.
//
// Conversions are pure functions of their inputs, so they run concurrently;
// the first failure cancels the rest and is returned annotated with the
// input's index.
func (r *Rewriter) ConvertAll(ctx context.Context, types []string, m mapping.Mapping, texts []string) ([]filter.Expression, error) {
	results := make([]filter.Expression, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			expr, err := r.ConvertText(types, text, m)
			if err != nil {
				return fmt.Errorf("filter %d: %w", i, err)
			}
			results[i] = expr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
