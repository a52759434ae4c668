package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/causalcore/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_StartupError(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		fact "A" {
			dependents = ["B"
	`
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600))

	err := run(context.Background(), &bytes.Buffer{}, []string{"-http-port", "0", filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "startup failed")
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`fact "A" { dependents = ["B"] }`), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &bytes.Buffer{}
	err := run(ctx, out, []string{"-http-port", "0", "-log-format", "text", filePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Graph ready.")
}
