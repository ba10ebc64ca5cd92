package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice_BaseRates(t *testing.T) {
	cases := []struct {
		level AcademicLevel
		want  int
	}{
		{LevelHighSchool, 300},
		{LevelUndergraduate, 450},
		{LevelGraduate, 625},
		{LevelPhD, 875},
	}
	for _, tc := range cases {
		t.Run(string(tc.level), func(t *testing.T) {
			got := ComputePrice(Quote{
				Service:  "essay",
				Level:    tc.level,
				Pages:    1,
				Deadline: Deadline2Weeks,
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputePrice_PageScalingBoundaries(t *testing.T) {
	one := ComputePrice(Quote{Service: "essay", Level: LevelGraduate, Pages: 1, Deadline: Deadline2Weeks})
	ten := ComputePrice(Quote{Service: "essay", Level: LevelGraduate, Pages: 10, Deadline: Deadline2Weeks})

	// 1 page is exactly the base rate, 10 pages exactly five times it.
	require.Equal(t, 625, one)
	require.Equal(t, 3125, ten)
	assert.Equal(t, one*5, ten)
}

func TestComputePrice_MissingInputsYieldZero(t *testing.T) {
	t.Run("no service", func(t *testing.T) {
		assert.Zero(t, ComputePrice(Quote{Level: LevelGraduate, Pages: 3}))
	})
	t.Run("no level", func(t *testing.T) {
		assert.Zero(t, ComputePrice(Quote{Service: "essay", Pages: 3}))
	})
	t.Run("no pages", func(t *testing.T) {
		assert.Zero(t, ComputePrice(Quote{Service: "essay", Level: LevelGraduate}))
	})
	t.Run("blank service", func(t *testing.T) {
		assert.Zero(t, ComputePrice(Quote{Service: "   ", Level: LevelGraduate, Pages: 3}))
	})
}

func TestComputePrice_DeadlineOrdering(t *testing.T) {
	price := func(d DeadlineTier) int {
		return ComputePrice(Quote{Service: "essay", Level: LevelUndergraduate, Pages: 4, Deadline: d})
	}
	p24 := price(Deadline24Hours)
	p48 := price(Deadline48Hours)
	p3d := price(Deadline3Days)
	p1w := price(Deadline1Week)
	p2w := price(Deadline2Weeks)

	assert.Greater(t, p24, p48)
	assert.Greater(t, p48, p3d)
	assert.Greater(t, p3d, p1w)
	assert.GreaterOrEqual(t, p1w, p2w)

	// Unset deadline behaves like the cheapest tier.
	assert.Equal(t, p2w, price(""))
}

func TestComputePrice_RoundsHalfAwayFromZero(t *testing.T) {
	// graduate, 1 page, 24h rush: 625 * 1.5 = 937.5 -> 938
	got := ComputePrice(Quote{Service: "essay", Level: LevelGraduate, Pages: 1, Deadline: Deadline24Hours})
	assert.Equal(t, 938, got)
}

func TestComputePrice_ServiceAndSubjectMultipliers(t *testing.T) {
	base := ComputePrice(Quote{Service: "essay", Level: LevelHighSchool, Pages: 1, Deadline: Deadline2Weeks})
	require.Equal(t, 300, base)

	t.Run("thesis is 1.5x", func(t *testing.T) {
		got := ComputePrice(Quote{Service: "thesis", Level: LevelHighSchool, Pages: 1, Deadline: Deadline2Weeks})
		assert.Equal(t, 450, got)
	})
	t.Run("plagiarism removal is 0.7x", func(t *testing.T) {
		got := ComputePrice(Quote{Service: "plagiarism-removal", Level: LevelHighSchool, Pages: 1, Deadline: Deadline2Weeks})
		assert.Equal(t, 210, got)
	})
	t.Run("medicine subject is 1.3x", func(t *testing.T) {
		got := ComputePrice(Quote{Service: "essay", Subject: "medicine", Level: LevelHighSchool, Pages: 1, Deadline: Deadline2Weeks})
		assert.Equal(t, 390, got)
	})
	t.Run("subject names are normalized", func(t *testing.T) {
		got := ComputePrice(Quote{Service: "essay", Subject: "Computer Science", Level: LevelHighSchool, Pages: 1, Deadline: Deadline2Weeks})
		assert.Equal(t, 330, got)
	})
	t.Run("unknown service and subject are 1.0x", func(t *testing.T) {
		got := ComputePrice(Quote{Service: "editing", Subject: "history", Level: LevelHighSchool, Pages: 1, Deadline: Deadline2Weeks})
		assert.Equal(t, 300, got)
	})
}

func TestComputePrice_Deterministic(t *testing.T) {
	q := Quote{Service: "dissertation", Subject: "law", Level: LevelPhD, Pages: 7, Deadline: Deadline48Hours}
	first := ComputePrice(q)
	assert.Positive(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputePrice(q))
	}
}
