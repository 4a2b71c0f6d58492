package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromiseSucceed(t *testing.T) {
	p := NewPromise[int]()
	assert.False(t, p.IsDone())
	p.Succeed(42)
	assert.True(t, p.IsDone())
	v, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestPromiseFail(t *testing.T) {
	p := NewPromise[int]()
	wantErr := errors.New("boom")
	p.Fail(wantErr)
	_, err := p.Result()
	assert.Equal(t, wantErr, err)
}

func TestPromiseAtMostOnceCompletion(t *testing.T) {
	p := NewPromise[int]()
	p.Succeed(1)
	p.Succeed(2)
	p.Fail(errors.New("too late"))
	v, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, v, "first completion wins, later ones are no-ops")
}
