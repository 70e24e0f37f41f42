package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/provgraph/internal/app"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, configure func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, configure)
}

// RunIntegrationTestWithContext writes files (keyed by path relative to the
// dataset directory) into a temporary directory and runs the full app against
// it. configure may adjust the config before validation; it may be nil.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	datasetDir := filepath.Join(t.TempDir(), "dataset")
	require.NoError(t, os.Mkdir(datasetDir, 0o755))
	for name, content := range files {
		filePath := filepath.Join(datasetDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	raw := app.Config{DatasetPath: datasetDir, LogFormat: "text"}
	if configure != nil {
		configure(&raw)
	}
	cfg, err := app.NewConfig(raw)
	if err != nil {
		return &HarnessResult{Err: err}
	}

	testApp, out, logs := app.SetupAppTest(t, cfg)
	runErr := testApp.Run(ctx)

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}
