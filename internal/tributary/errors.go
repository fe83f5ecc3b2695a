package tributary

import (
	"fmt"
	"strings"
)

// InputGeometryError reports an outline that is missing or not a simple
// polygon with positive area.
type InputGeometryError struct {
	Item string // e.g. "slab", "column 2", "opening 1"
	Err  error
}

func (e *InputGeometryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid geometry: %s", e.Item)
	}
	return fmt.Sprintf("invalid geometry: %s: %v", e.Item, e.Err)
}

func (e *InputGeometryError) Unwrap() error { return e.Err }

// LoadTableError reports an occupancy load table that cannot be used.
type LoadTableError struct {
	Category string
	Reason   string
}

func (e *LoadTableError) Error() string {
	if e.Category == "" {
		return "load table: " + e.Reason
	}
	return fmt.Sprintf("load table: category %q: %s", e.Category, e.Reason)
}

// PartitionConsistencyError is returned when Voronoi cells could not be
// matched one-to-one with their seeds.
type PartitionConsistencyError struct {
	Seeds   int
	Cells   int
	Missing []int // seed ids with no associated cell
	Err     error
}

func (e *PartitionConsistencyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tributary partition inconsistent: %d seeds, %d cells", e.Seeds, e.Cells)
	if len(e.Missing) > 0 {
		ids := make([]string, 0, len(e.Missing))
		for i, id := range e.Missing {
			if i == 10 {
				ids = append(ids, fmt.Sprintf("... (%d more)", len(e.Missing)-10))
				break
			}
			ids = append(ids, fmt.Sprint(id))
		}
		fmt.Fprintf(&b, " (unmatched seeds: %s)", strings.Join(ids, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *PartitionConsistencyError) Unwrap() error { return e.Err }
