package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikeLeavesPlainTextAlone(t *testing.T) {
	assert.Equal(t, "alice", escapeLike("alice"))
	assert.Equal(t, "", escapeLike(""))
}

func TestEscapeLikeNeutralizesWildcards(t *testing.T) {
	// A bare wildcard keyword must match literally, not every row.
	assert.Equal(t, `\_`, escapeLike(`_`))
	assert.Equal(t, `\%`, escapeLike(`%`))
	assert.Equal(t, `50\%`, escapeLike(`50%`))
	assert.Equal(t, `a\_b\%c`, escapeLike(`a_b%c`))
}

func TestEscapeLikeEscapesBackslash(t *testing.T) {
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, `\\\%`, escapeLike(`\%`))
}
