package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReleaseCreatedTime(t *testing.T) {
	created, ok := Release{CreatedAt: "2020-01-01T00:00:00Z"}.CreatedTime()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), created)

	_, ok = Release{}.CreatedTime()
	assert.False(t, ok)

	_, ok = Release{CreatedAt: "yesterday"}.CreatedTime()
	assert.False(t, ok)
}

func TestTagShortHash(t *testing.T) {
	assert.Equal(t, "8152e7e", Tag{Hash: "8152e7eb6ccf0ef6aeb0d44a3c8a0c8e4a57e7c9"}.ShortHash())
	assert.Equal(t, "abc", Tag{Hash: "abc"}.ShortHash())
}
