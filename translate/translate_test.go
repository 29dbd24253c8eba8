package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 '@x' bad", From("line %d '%v' %v", 3, "@x", "bad"))
	assert.Equal("no arguments", From("no arguments"))
}
