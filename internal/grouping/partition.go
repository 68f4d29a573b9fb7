package grouping

import (
	"fmt"

	"comparables/internal/model"
)

// Count returns ceil(total/size)
func Count(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Partition splits rows into ordered, contiguous, non-overlapping groups.
// Group g covers rows [g*size, min((g+1)*size, len(rows))). The last group
// may be smaller. A size below 1 is a configuration error.
func Partition(rows []model.Row, size int) ([]model.Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("group size must be at least 1, got %d", size)
	}

	groups := make([]model.Group, 0, Count(len(rows), size))
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		groups = append(groups, model.Group{
			Index: len(groups),
			Rows:  rows[start:end:end],
		})
	}
	return groups, nil
}

// Select returns the group with the given zero-based index
func Select(groups []model.Group, index int) (model.Group, error) {
	if index < 0 || index >= len(groups) {
		return model.Group{}, fmt.Errorf("%s does not exist (%d group(s) available)", model.GroupLabel(index), len(groups))
	}
	return groups[index], nil
}
