package cookie

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyTableAdd(t *testing.T) {
	ft := NewFrequencyTable()

	assert.Equal(t, 1, ft.Add("PG5h4u7zpHtq3Omy"))
	assert.Equal(t, 1, ft.Max())

	assert.Equal(t, 2, ft.Add("PG5h4u7zpHtq3Omy"))
	assert.Equal(t, 2, ft.Max())

	assert.Equal(t, 1, ft.Add("Lzg3P1WfuU4fth9g"))
	assert.Equal(t, 2, ft.Max())
	assert.Equal(t, 2, ft.Len())
	assert.Equal(t, 1, ft.Count("Lzg3P1WfuU4fth9g"))
	assert.Equal(t, 0, ft.Count("missing"))
}

func TestAggregateScenarioA(t *testing.T) {
	log := scenarioLog(t)
	assert.Equal(t, []string{"X"}, Aggregate(log[0:4]))
}

func TestAggregateScenarioB(t *testing.T) {
	log := scenarioLog(t)
	assert.Equal(t, []string{"Y"}, Aggregate(log[4:5]))
}

func TestAggregateScenarioEThreeWayTie(t *testing.T) {
	log := mustParse(t,
		"P,2021-06-01T20:00",
		"Q,2021-06-01T12:00",
		"R,2021-06-01T01:00",
	)
	assert.ElementsMatch(t, []string{"P", "Q", "R"}, Aggregate(log))
}

func TestAggregateEmptyIsEmptyNotNil(t *testing.T) {
	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, Tally(nil).Max())
}

func TestAggregateReportsEncounterOrder(t *testing.T) {
	log := mustParse(t,
		"b,2021-06-01T20:00",
		"a,2021-06-01T19:00",
		"b,2021-06-01T18:00",
		"a,2021-06-01T17:00",
		"c,2021-06-01T16:00",
	)
	assert.Equal(t, []string{"b", "a"}, Aggregate(log))
}

func TestAggregateIsPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		log := randomLog(rng, 1+rng.Intn(30))
		want := Aggregate(log)

		shuffled := append([]Record(nil), log...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.ElementsMatch(t, want, Aggregate(shuffled), "trial %d", trial)
	}
}
