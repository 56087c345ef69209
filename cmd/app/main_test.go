package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ReadsLevelFromEnvFile(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=warn\n"), 0o600))

	logger := newLogger(envFile)

	require.Equal(t, "warn", os.Getenv("LOG_LEVEL"))
	require.Equal(t, logrus.WarnLevel, logger.GetLevel())
}
