package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twelveGroups builds ordered standings for groups A..L whose third-place
// rows have strictly decreasing points from A to L.
func twelveGroups(t *testing.T) map[string][]*StandingsRow {
	t.Helper()
	groups := map[string][]*StandingsRow{}
	for i := 0; i < 12; i++ {
		letter := string(rune('A' + i))
		third := row(300+i, fmt.Sprintf("Third %s", letter), 20-i, 0, i)
		groups[letter] = []*StandingsRow{
			row(100+i, "Winner "+letter, 90, 9, 9),
			row(200+i, "Second "+letter, 60, 4, 5),
			third,
			row(400+i, "Fourth "+letter, 0, -9, 0),
		}
	}
	return groups
}

func TestRankThirdPlaceSelectsTopEight(t *testing.T) {
	groups := twelveGroups(t)

	rows, normalized, changed := RankThirdPlace(groups, nil)
	require.Len(t, rows, 12)
	require.Len(t, normalized, 12)
	assert.True(t, changed)

	for i, r := range rows {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, i < WildCardSlots, r.Advances, "rank %d", i+1)
	}
	// Groups A..H hold the best third-place records in this fixture.
	assert.Equal(t, "A", rows[0].Group)
	assert.Equal(t, "H", rows[7].Group)
	assert.False(t, rows[8].Advances)
}

func TestRankThirdPlaceOverrideReordersWithinFixedCount(t *testing.T) {
	groups := twelveGroups(t)
	_, defaultOrder, _ := RankThirdPlace(groups, nil)

	// Push the default 9th-ranked team to the front of the stored order: it
	// advances, and exactly one former qualifier drops out. The count of
	// advancing teams never moves.
	manual := append([]int{defaultOrder[8]}, defaultOrder[:8]...)
	manual = append(manual, defaultOrder[9:]...)

	rows, normalized, changed := RankThirdPlace(groups, manual)
	require.False(t, changed)
	assert.Equal(t, manual, normalized)

	advancing := 0
	for _, r := range rows {
		if r.Advances {
			advancing++
		}
	}
	assert.Equal(t, WildCardSlots, advancing)
	assert.Equal(t, defaultOrder[8], rows[0].Team.ID)
	// The team reordered past rank 8 is out.
	assert.False(t, rows[8].Advances)
	assert.Equal(t, defaultOrder[7], rows[8].Team.ID)
}

func TestRankThirdPlaceReconcilesAgainstFullList(t *testing.T) {
	groups := twelveGroups(t)

	// A stored order naming a 9th+ candidate is legitimate: reconciliation
	// runs against all twelve rows, not just the advancing eight.
	stored := []int{311, 310}
	rows, normalized, changed := RankThirdPlace(groups, stored)
	assert.True(t, changed)
	require.Len(t, normalized, 12)
	assert.Equal(t, 311, normalized[0])
	assert.Equal(t, 310, normalized[1])
	assert.True(t, rows[0].Advances)
	assert.True(t, rows[1].Advances)
}

func TestRankThirdPlaceSkipsIncompleteGroups(t *testing.T) {
	groups := map[string][]*StandingsRow{
		"A": {row(1, "A1", 9, 3, 3), row(2, "A2", 6, 1, 2), row(3, "A3", 3, -1, 1)},
		"B": {row(4, "B1", 9, 3, 3), row(5, "B2", 6, 1, 2)},
	}

	rows, _, _ := RankThirdPlace(groups, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Group)
	assert.True(t, rows[0].Advances)
}
