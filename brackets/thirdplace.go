package brackets

import "sort"

// WildCardSlots is the number of third-place finishers that advance to the
// knockout stage. Overrides may reorder the ranking but never change this.
const WildCardSlots = 8

// ThirdPlaceRow is one group's third-place finisher in the cross-group
// ranking table.
type ThirdPlaceRow struct {
	*StandingsRow
	Group    string `json:"group"`
	Rank     int    `json:"rank"`
	Advances bool   `json:"advances"`
}

// RankThirdPlace extracts the third-place finisher of every ordered group,
// ranks them across groups, and reconciles the manual order against the full
// candidate list (not just the advancing slice). The first WildCardSlots
// entries of the reconciled order advance. Returns the table, the reconciled
// order to persist, and whether reconciliation changed it.
func RankThirdPlace(ordered map[string][]*StandingsRow, storedOrder []int) ([]ThirdPlaceRow, []int, bool) {
	rows := make([]ThirdPlaceRow, 0, len(ordered))
	for _, letter := range SortedGroupLetters(ordered) {
		group := ordered[letter]
		if len(group) < 3 {
			continue
		}
		rows = append(rows, ThirdPlaceRow{StandingsRow: group[2], Group: letter})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return lessRowsDefault(rows[i].StandingsRow, rows[j].StandingsRow)
	})

	candidates := make([]int, len(rows))
	byID := make(map[int]ThirdPlaceRow, len(rows))
	for i, row := range rows {
		candidates[i] = row.Team.ID
		byID[row.Team.ID] = row
	}

	normalized, changed := Reconcile(candidates, storedOrder)

	ranked := make([]ThirdPlaceRow, len(normalized))
	for i, id := range normalized {
		row := byID[id]
		row.Rank = i + 1
		row.Advances = i < WildCardSlots
		ranked[i] = row
	}
	return ranked, normalized, changed
}
