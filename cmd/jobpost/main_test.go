package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/mwalto/jobpost/cmd/jobpost"
)

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "jobpost.db")
	return m
}

func run(t *testing.T, m *main.Main, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	err = m.Run(context.Background(), args, &out, &errBuf)
	return out.String(), errBuf.String(), err
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	_, _, err := run(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestCmdManual(t *testing.T) {
	t.Parallel()

	t.Run("creates a manual posting", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout, _, err := run(t, m, "manual",
			"Backend Engineer", "Acme Inc", "We need someone with 5 years experience building APIs.")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Created manual posting")
		assert.Contains(t, stdout, "Backend Engineer")
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		_, stderr, err := run(t, m, "manual", "", "Acme Inc", "description")
		require.Error(t, err)
		assert.Contains(t, stderr, "title and description")
	})
}

func TestCmdList(t *testing.T) {
	t.Parallel()

	t.Run("lists created postings", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		_, _, err := run(t, m, "manual", "Backend Engineer", "Acme Inc", "A long enough description.")
		require.NoError(t, err)

		stdout, _, err := run(t, m, "list")
		require.NoError(t, err)
		assert.Contains(t, stdout, "manual")
		assert.Contains(t, stdout, "Backend Engineer")
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout, _, err := run(t, m, "list", "--status", "complete")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No postings found")
	})
}

func TestCmdShow(t *testing.T) {
	t.Parallel()

	t.Run("shows a posting with provenance", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout, _, err := run(t, m, "manual", "Backend Engineer", "Acme Inc", "A long enough description.")
		require.NoError(t, err)

		id := extractID(t, stdout)
		stdout, _, err = run(t, m, "show", id)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Status:      manual")
		assert.Contains(t, stdout, "Title:       Backend Engineer")
		assert.Contains(t, stdout, "manual/manual")
	})

	t.Run("errors for unknown posting", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		_, stderr, err := run(t, m, "show", "missing")
		require.Error(t, err)
		assert.Contains(t, stderr, "not found")
	})
}

func TestCmdAttempts(t *testing.T) {
	t.Parallel()

	t.Run("reports empty audit trail", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout, _, err := run(t, m, "manual", "Backend Engineer", "Acme Inc", "A long enough description.")
		require.NoError(t, err)

		id := extractID(t, stdout)
		stdout, _, err = run(t, m, "attempts", id)
		require.NoError(t, err)
		assert.Contains(t, stdout, "No attempts recorded")
	})
}

// extractID pulls the posting ID out of "Created manual posting ... (id)".
func extractID(t *testing.T, stdout string) string {
	t.Helper()
	start := strings.LastIndex(stdout, "(")
	end := strings.LastIndex(stdout, ")")
	require.True(t, start >= 0 && end > start, "no posting ID in output: %q", stdout)
	return stdout[start+1 : end]
}
