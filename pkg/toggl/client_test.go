package toggl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithWorkspaceAppendsSelector(t *testing.T) {
	var got []string
	r := WithWorkspace(RunnerFunc(func(ctx context.Context, args ...string) (string, error) {
		got = args
		return "", nil
	}), 42)

	_, err := r.Run(context.Background(), "now")
	require.NoError(t, err)
	assert.Equal(t, []string{"now", "--workspace", "42"}, got)
}
