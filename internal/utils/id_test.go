package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDLengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 6, 12} {
		id := GenerateID(length)
		assert.Len(t, id, length)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q in %q", r, id)
		}
	}
}

func TestGenerateIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateID(6)] = true
	}
	// 31^6 codes; 50 draws colliding into one bucket would mean a broken generator.
	assert.Greater(t, len(seen), 1)
}
