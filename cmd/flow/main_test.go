package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) (*app, *bytes.Buffer, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}
	root := newRootCmd(a)
	cfg := filepath.Join(t.TempDir(), "absent.yaml")
	root.SetArgs(append([]string{"--config", cfg, "--no-color"}, args...))
	err := root.ExecuteContext(context.Background())
	return a, &stdout, err
}

func TestRootRequiresTwoArgs(t *testing.T) {
	_, _, err := execRoot(t, "only-one")
	assert.ErrorIs(t, err, errUsage)
}

func TestRootRunsTarget(t *testing.T) {
	flow := filepath.Join(t.TempDir(), "hello.flow")
	require.NoError(t, os.WriteFile(flow, []byte("node=hi\ncommand=echo hi\n"), 0o644))

	a, stdout, err := execRoot(t, flow, "hi")
	require.NoError(t, err)
	assert.Equal(t, 0, a.code)
	assert.Equal(t, "hi\n", stdout.String())
}

func TestListCommand(t *testing.T) {
	flow := filepath.Join(t.TempDir(), "hello.flow")
	require.NoError(t, os.WriteFile(flow, []byte("node=hi\ncommand=echo hi\n"), 0o644))

	a, stdout, err := execRoot(t, "list", flow)
	require.NoError(t, err)
	assert.Equal(t, 0, a.code)
	assert.Contains(t, stdout.String(), "echo hi")
}

func TestAuditCommandDisabled(t *testing.T) {
	a, stdout, err := execRoot(t, "audit", "verify")
	require.NoError(t, err)
	assert.Equal(t, 1, a.code)
	assert.Contains(t, stdout.String(), "audit log disabled")
}

func TestFlowFileNamedLikeSubcommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "list"), []byte("node=hi\ncommand=echo hi\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	a, stdout, err := execRoot(t, "./list", "hi")
	require.NoError(t, err)
	assert.Equal(t, 0, a.code)
	assert.Equal(t, "hi\n", stdout.String())
}
