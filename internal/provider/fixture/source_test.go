package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lei/jobtabs/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestSource_FetchJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - company: TOMMY\n  - company: CUKER\n"), 0o600))

	jobs, err := NewSource(path, logger.Discard()).FetchJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "CUKER", jobs[1].Company)
}

func TestSource_MissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "nope.yaml"), logger.Discard()).FetchJobs(context.Background())
	require.Error(t, err)
}

func TestSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource("unused.yaml", logger.Discard()).FetchJobs(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
