package redis

import (
	"testing"

	"github.com/kindredapp/kindred-api/internal/oracle"
	"github.com/stretchr/testify/assert"
)

func TestScoreKey(t *testing.T) {
	key := scoreKey(oracle.AspectPersonality, "aaa:bbb")
	assert.Equal(t, "oracle:score:personality:aaa:bbb", key)

	// Different aspects of the same pair must not collide.
	other := scoreKey(oracle.AspectValues, "aaa:bbb")
	assert.NotEqual(t, key, other)
}

func TestNewCacheRejectsInvalidURL(t *testing.T) {
	cache, err := NewCache("not-a-redis-url")
	assert.Nil(t, cache)
	assert.Error(t, err)
}
