package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLifecycle_StartToSuccess covers the happy path.
func TestLifecycle_StartToSuccess(t *testing.T) {
	var lf lifecycle[int]
	assert.True(t, lf.idle())

	tok := lf.start()
	require.NotEmpty(t, tok)
	assert.True(t, lf.pending())

	lf.resolve(tok, 42, nil)
	assert.True(t, lf.ok())
	assert.Equal(t, 42, lf.value)
}

// TestLifecycle_StartToFailure stores the error's display text.
func TestLifecycle_StartToFailure(t *testing.T) {
	var lf lifecycle[int]
	tok := lf.start()

	lf.resolve(tok, 0, errors.New("model unavailable"))

	assert.True(t, lf.failed())
	assert.Equal(t, "model unavailable", lf.errMsg)
}

// TestLifecycle_StaleTokenDropped verifies a response from a superseded
// generation never mutates the slot.
func TestLifecycle_StaleTokenDropped(t *testing.T) {
	var lf lifecycle[string]
	oldTok := lf.start()
	newTok := lf.start()
	require.NotEqual(t, oldTok, newTok)

	lf.resolve(oldTok, "stale", nil)
	assert.True(t, lf.pending(), "stale success must not settle the slot")

	lf.resolve(oldTok, "", errors.New("stale failure"))
	assert.True(t, lf.pending(), "stale failure must not settle the slot")

	lf.resolve(newTok, "fresh", nil)
	assert.True(t, lf.ok())
	assert.Equal(t, "fresh", lf.value)
}

// TestLifecycle_TerminalStateIsSticky verifies a settled slot ignores
// further completions until restarted.
func TestLifecycle_TerminalStateIsSticky(t *testing.T) {
	var lf lifecycle[int]
	tok := lf.start()
	lf.resolve(tok, 0, errors.New("first failure"))
	require.True(t, lf.failed())

	lf.resolve(tok, 7, nil)
	assert.True(t, lf.failed(), "terminal status must not regress")
	assert.Equal(t, "first failure", lf.errMsg)
}

// TestLifecycle_RestartClearsError verifies start replaces the slot
// wholesale.
func TestLifecycle_RestartClearsError(t *testing.T) {
	var lf lifecycle[int]
	tok := lf.start()
	lf.resolve(tok, 0, errors.New("boom"))
	require.True(t, lf.failed())

	tok2 := lf.start()
	assert.True(t, lf.pending())
	assert.Empty(t, lf.errMsg)

	lf.resolve(tok2, 9, nil)
	assert.True(t, lf.ok())
	assert.Equal(t, 9, lf.value)
}

// TestNewToken_Unique is a sanity check on token generation.
func TestNewToken_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		tok := newToken()
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}
