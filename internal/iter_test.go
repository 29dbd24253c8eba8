package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	first := map[string]int{"a": 1}
	second := map[string]int{"b": 2, "c": 3}

	all := map[string]int{}
	for k, v := range IterSeq2Concat(maps.All(first), maps.All(second)) {
		all[k] = v
	}
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	count := 0
	for range IterSeq2Concat(maps.All(first), maps.All(second)) {
		count++
		break
	}
	assert.Equal(1, count)

	for range IterSeq2Concat[string, int]() {
		t.Fatal("empty concatenation yielded")
	}
}
