package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("ping")
	assert.False(t, ok)

	s.Set("ping", "0102")
	payload, ok := s.Get("ping")
	assert.True(t, ok)
	assert.Equal(t, "0102", payload)
}

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore()
	s.Set("ping", "0102")
	s.Set("ping", "zz")

	payload, _ := s.Get("ping")
	assert.Equal(t, "zz", payload)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Names(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.Names())

	s.Set("reset", "ff")
	s.Set("ack", "06")
	s.Set("ping", "0102")
	assert.Equal(t, []string{"ack", "ping", "reset"}, s.Names())
}
