package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkipLimit(t *testing.T) {
	skip, limit := ParseSkipLimit("", "")
	assert.Equal(t, 0, skip)
	assert.Equal(t, 0, limit)

	skip, limit = ParseSkipLimit("20", "50")
	assert.Equal(t, 20, skip)
	assert.Equal(t, 50, limit)

	// valores inválidos o negativos caen al default
	skip, limit = ParseSkipLimit("-5", "abc")
	assert.Equal(t, 0, skip)
	assert.Equal(t, 0, limit)

	// el tope acota limit
	_, limit = ParseSkipLimit("0", "9999")
	assert.Equal(t, 500, limit)
}
