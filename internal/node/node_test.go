package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_CopiesDependents(t *testing.T) {
	deps := []string{"b", "c"}
	n := New("a", deps)

	deps[0] = "mutated"

	assert.Equal(t, "a", n.ID)
	assert.Equal(t, []string{"b", "c"}, n.Dependents)
}

func TestOutDegree(t *testing.T) {
	assert.Equal(t, 0, (*Node)(nil).OutDegree())
	assert.Equal(t, 0, New("a", nil).OutDegree())
	assert.Equal(t, 3, New("a", []string{"b", "b", "a"}).OutDegree(), "duplicates and self-loops count")
}
