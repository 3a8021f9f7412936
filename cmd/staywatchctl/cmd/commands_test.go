package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluateUnknownTravelerIsNone(t *testing.T) {
	out, err := execute(t, "evaluate", uuid.NewString())
	require.NoError(t, err)

	var outcome map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	assert.Equal(t, "NONE", outcome["risk_level"])
	assert.Equal(t, "none", outcome["transition"])
}

func TestWindowRejectsBadDate(t *testing.T) {
	_, err := execute(t, "window", uuid.NewString(), "--date", "tomorrow")
	assert.Error(t, err)
}

func TestEvaluateRejectsBadTravelerID(t *testing.T) {
	_, err := execute(t, "evaluate", "nope")
	assert.Error(t, err)
}

func TestMigrateNeedsPostgres(t *testing.T) {
	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "POSTGRES_URL")
}
