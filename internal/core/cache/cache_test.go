package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestNilCacheLoadsThrough(t *testing.T) {
	var c *Cache
	calls := 0
	load := func(context.Context) (*member, error) {
		calls++
		return &member{ID: 7, Name: "Ada"}, nil
	}

	for i := 0; i < 2; i++ {
		got, err := GetOrLoadJSON(c, context.Background(), "member:7", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, &member{ID: 7, Name: "Ada"}, got)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Del(context.Background(), "member:7"))
	assert.NoError(t, c.Close())
}

func TestLoadErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := GetOrLoadJSON(nil, context.Background(), "k", time.Minute, func(context.Context) (*member, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNilValueDecodesToNil(t *testing.T) {
	got, err := GetOrLoadJSON(nil, context.Background(), "k", time.Minute, func(context.Context) (*member, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}
