package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCaps(t *testing.T) {
	out, err := execute(t, "caps", "--threads", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "workers:    2")
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "--algo", "copy_if", "--mode", "par_unseq", "--n", "5000", "--threads", "3", "--grain", "16", "--repeat", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "copy_if")
	assert.Contains(t, out, "par_unseq")
	assert.NotContains(t, out, "MISMATCH")
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "--algo", "bogo_sort")
	assert.ErrorContains(t, err, "unknown algorithm")

	_, err = execute(t, "run", "--mode", "turbo", "--n", "10")
	assert.Error(t, err)

	_, err = execute(t, "run", "--backend", "fibers", "--n", "10")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestAll(t *testing.T) {
	for _, backend := range []string{"pool", "goroutine"} {
		out, err := execute(t, "all", "--n", "3000", "--threads", "4", "--grain", "8", "--repeat", "1", "--backend", backend)
		require.NoError(t, err, out)
		for _, b := range benchmarks {
			assert.Contains(t, out, b.name)
		}
	}
}
