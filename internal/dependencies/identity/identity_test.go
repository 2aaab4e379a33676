package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewIDIsUnique(t *testing.T) {
	gen := New()
	seen := make(map[uuid.UUID]bool)

	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		assert.NotEqual(t, uuid.Nil, id)
		assert.False(t, seen[id], "duplicate id generated")
		seen[id] = true
	}
}

func TestNewIDIsVersion4(t *testing.T) {
	id := New().NewID()
	assert.Equal(t, uuid.Version(4), id.Version())
}
