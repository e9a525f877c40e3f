package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:37780", cfg.ListenAddr())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LEITNER_SERVER_PORT", "9000")
	t.Setenv("LEITNER_SCHEDULER_PROFILE", "alice")
	t.Setenv("LEITNER_SCHEDULER_MAX_NEW_PER_DAY", "5")
	t.Setenv("LEITNER_SCHEDULER_TIMEZONE", "UTC")
	t.Setenv("LEITNER_DIGEST_INTERVAL", "30m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "alice", cfg.Scheduler.Profile)
	assert.Equal(t, 5, cfg.Scheduler.MaxNewPerDay)
	assert.Equal(t, 30*time.Minute, cfg.Digest.Interval)
	assert.True(t, cfg.Scheduler.DailyLimitEnabled, "unset fields keep defaults")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	t.Setenv("LEITNER_SCHEDULER_MAX_NEW_PER_DAY", "-3")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidateTimezone(t *testing.T) {
	cfg := Default()
	cfg.Scheduler.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestValidateLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}
