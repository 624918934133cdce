package brackets

import (
	"fmt"
	"sort"
)

// TieKey identifies a standings tie bucket by the (points, goal difference)
// pair its teams share. Only buckets of two or more teams ever consult a
// stored override.
func TieKey(points, goalDifference int) string {
	return fmt.Sprintf("%d:%d", points, goalDifference)
}

// Reconcile filters a stored manual ordering against the current candidate
// set: ids no longer eligible are dropped, newly eligible ids are appended in
// their default-order position. The result is the new authoritative list, so
// reconciling it again against the same candidates is a no-op.
func Reconcile(candidates []int, stored []int) ([]int, bool) {
	eligible := make(map[int]bool, len(candidates))
	for _, id := range candidates {
		eligible[id] = true
	}

	normalized := make([]int, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, id := range stored {
		if eligible[id] && !seen[id] {
			normalized = append(normalized, id)
			seen[id] = true
		}
	}
	for _, id := range candidates {
		if !seen[id] {
			normalized = append(normalized, id)
			seen[id] = true
		}
	}

	changed := len(normalized) != len(stored)
	if !changed {
		for i := range normalized {
			if normalized[i] != stored[i] {
				changed = true
				break
			}
		}
	}
	return normalized, changed
}

// OrderGroup produces a total order over a group's rows. Rows are sorted by
// the natural key, then each (points, goal difference) bucket of two or more
// teams is reordered by its reconciled override. The reconciled lists are
// written back into overrides so the caller can persist the self-healed state.
func OrderGroup(rows []*StandingsRow, overrides map[string][]int) ([]*StandingsRow, bool) {
	ordered := make([]*StandingsRow, len(rows))
	copy(ordered, rows)
	sortRowsDefault(ordered)

	changed := false
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) &&
			ordered[end].Points == ordered[start].Points &&
			ordered[end].GoalDifference == ordered[start].GoalDifference {
			end++
		}
		if end-start > 1 {
			if reorderBucket(ordered[start:end], overrides) {
				changed = true
			}
		}
		start = end
	}
	return ordered, changed
}

// reorderBucket applies the stored override for one tie bucket in place.
// The default order within a bucket is goals-for desc, then name asc, which
// the incoming slice already carries from the natural sort.
func reorderBucket(bucket []*StandingsRow, overrides map[string][]int) bool {
	key := TieKey(bucket[0].Points, bucket[0].GoalDifference)

	candidates := make([]int, len(bucket))
	byID := make(map[int]*StandingsRow, len(bucket))
	for i, row := range bucket {
		candidates[i] = row.Team.ID
		byID[row.Team.ID] = row
	}

	stored := overrides[key]
	normalized, changed := Reconcile(candidates, stored)
	overrides[key] = normalized

	for i, id := range normalized {
		bucket[i] = byID[id]
	}
	return changed
}

// SortedGroupLetters returns the group letters present in ascending order,
// the canonical iteration order everywhere groups are walked.
func SortedGroupLetters(groups map[string][]*StandingsRow) []string {
	letters := make([]string, 0, len(groups))
	for letter := range groups {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	return letters
}
