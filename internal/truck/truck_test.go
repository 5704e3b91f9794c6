package truck

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	r := New()

	assert.Equal(t, "git-truck", r.command)
	assert.Equal(t, []string{"--headless", "--stdout"}, r.args)
	assert.Equal(t, DefaultTimeout, r.timeout)
}

func TestOptions(t *testing.T) {
	r := New(
		WithCommand("truck-cli", "--json"),
		WithTimeout(30*time.Second),
		WithCloneDepth(1),
	)

	assert.Equal(t, "truck-cli", r.command)
	assert.Equal(t, []string{"--json"}, r.args)
	assert.Equal(t, 30*time.Second, r.timeout)
	assert.Equal(t, 1, r.depth)
}

func TestOptionsIgnoreZeroValues(t *testing.T) {
	r := New(
		WithCommand(""),
		WithTimeout(0),
	)

	assert.Equal(t, "git-truck", r.command)
	assert.Equal(t, DefaultTimeout, r.timeout)
}

func TestAnalyzePathToolMissing(t *testing.T) {
	r := New(WithCommand("camion-no-such-tool"))

	_, err := r.AnalyzePath(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestAnalyzePathToolFailure(t *testing.T) {
	// "false" exists on every test host and exits non-zero.
	r := New(WithCommand("false"))

	_, err := r.AnalyzePath(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrToolNotFound)
}

func TestAnalyzePathMalformedOutput(t *testing.T) {
	// "true" exits zero with empty stdout, so extraction must fail.
	r := New(WithCommand("true"))

	_, err := r.AnalyzePath(context.Background(), t.TempDir())
	require.Error(t, err)
}
