package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--env-file", filepath.Join(dir, "missing.env"),
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLabelCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "feedback.csv")
	out := filepath.Join(dir, "labeled.csv")
	require.NoError(t, os.WriteFile(in, []byte("comment_text\nThe refund was slow\nGreat onboarding\n"), 0o644))

	_, stderr, err := execute(t, "label", "--in", in, "--out", out, "--topics")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "comment_text,sentiment,topic\nThe refund was slow,Negative,Billing\nGreat onboarding,Positive,Onboarding\n", string(data))
	assert.Contains(t, stderr, "Total")
}

func TestLabelCommand_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "feedback.csv")
	require.NoError(t, os.WriteFile(in, []byte("text\nhello\n"), 0o644))

	_, _, err := execute(t, "label", "--in", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "comment_text"`)
}

func TestForecastCommand(t *testing.T) {
	stdout, _, err := execute(t, "forecast", "--discount-max", "20", "--discount-step", "10")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewBufferString(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "discount_rate_%", records[0][0])
	assert.Equal(t, []string{"20.0", "0.0340", "3400", "83.20", "282880.00", "141440.00", "2.83", "1.41"}, records[3])
}
