package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "iam.db", cfg.DatabaseFile)
	require.Equal(t, []string{"session", "token"}, cfg.Carriers)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, time.Minute, cfg.JWTLeeway)
	require.Equal(t, 8080, cfg.Port)
}

func TestCarrierSelection(t *testing.T) {
	t.Setenv("IAM_CARRIERS", "session")

	cfg := LoadConfig()
	require.True(t, cfg.CarrierEnabled(CarrierSession))
	require.False(t, cfg.CarrierEnabled(CarrierToken))
}

func TestCarrierParsingIsForgiving(t *testing.T) {
	t.Setenv("IAM_CARRIERS", " Session , TOKEN ,")

	cfg := LoadConfig()
	require.Equal(t, []string{"session", "token"}, cfg.Carriers)
}
