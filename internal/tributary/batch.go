package tributary

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FloorResult is the partition of one floor in a batch.
type FloorResult struct {
	Floor *FloorDefinition
	Areas []*ColumnArea
}

// PartitionAll partitions independent floors concurrently with at most
// workers running at once. Results are in input order. The first failure
// cancels the remaining floors and is returned.
func (p *Partitioner) PartitionAll(ctx context.Context, floors []*FloorDefinition, table LoadTable, maxWallSegment float64, workers int) ([]FloorResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]FloorResult, len(floors))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, floor := range floors {
		i, floor := i, floor
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			areas, err := p.Partition(floor, table, maxWallSegment)
			if err != nil {
				return fmt.Errorf("floor %s: %w", floorName(floor, i), err)
			}
			results[i] = FloorResult{Floor: floor, Areas: areas}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.logger.Debug("partitioned floors", zap.Int("floors", len(floors)), zap.Int("workers", workers))
	return results, nil
}

func floorName(f *FloorDefinition, i int) string {
	if f != nil && f.Name != "" {
		return fmt.Sprintf("%q", f.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}
