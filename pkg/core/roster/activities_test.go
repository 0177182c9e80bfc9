package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeActivities(t *testing.T) {
	activities := NormalizeActivities("Singing, Prayer, Preaching")

	assert.Equal(t, []string{"Prayer", "Preaching", "Singing"}, activities)
}

func TestNormalizeActivities_TrimsWhitespace(t *testing.T) {
	activities := NormalizeActivities("  Singing ,Prayer  ,  Preaching")

	assert.Equal(t, []string{"Prayer", "Preaching", "Singing"}, activities)
}

func TestNormalizeActivities_DropsDuplicatesAndEmpties(t *testing.T) {
	activities := NormalizeActivities("Singing, , Singing,, Prayer, Singing")

	assert.Equal(t, []string{"Prayer", "Singing"}, activities)
}

func TestNormalizeActivities_Empty(t *testing.T) {
	assert.Empty(t, NormalizeActivities(""))
	assert.Empty(t, NormalizeActivities(" , , "))
}

func TestJoinActivities(t *testing.T) {
	joined := JoinActivities([]string{"Prayer", "Singing"})

	assert.Equal(t, "Prayer, Singing", joined)
}
