package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config := defaultConfig()
	require.NoError(t, config.load(writeConfig(t, "robot:\n  host: 10.1.2.3\n")))

	assert.Equal(t, "10.1.2.3", config.Robot.Host)
	assert.Equal(t, 8080, config.Robot.Port)
	assert.Equal(t, transportTCP, config.Robot.Transport)
	assert.Equal(t, 100, config.Motion.Speed)
	assert.Equal(t, 10*time.Millisecond, config.Motion.Interval)
	assert.Equal(t, "127.0.0.1:8765", config.Console.Listen)
	assert.Equal(t, "info", config.Log.Level)
}

func TestLoadConfigFull(t *testing.T) {
	config := defaultConfig()
	require.NoError(t, config.load(writeConfig(t, `
robot:
  transport: serial
  host: /dev/ttyUSB0
  baud: 57600
  autoconnect: true
motion:
  speed: 400
  interval: 25ms
console:
  listen: 0.0.0.0:9000
  origins: [http://pad.local]
  credentials:
    username: pilot
    password: s3cret
log:
  level: debug
`)))

	assert.Equal(t, transportSerial, config.Robot.Transport)
	assert.Equal(t, 57600, config.Robot.Baud)
	assert.True(t, config.Robot.Autoconnect)
	assert.Equal(t, 255, config.Motion.Speed)
	assert.Equal(t, 25*time.Millisecond, config.Motion.Interval)
	assert.Equal(t, []string{"http://pad.local"}, config.Console.Origins)
	assert.Equal(t, "pilot", config.Console.Credentials.Username)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "robot:\n  hots: 10.0.0.1\n",
		"unknown transport": "robot:\n  transport: bluetooth\n",
		"bad port":          "robot:\n  port: 70000\n",
		"bad interval":      "motion:\n  interval: 0s\n",
		"empty host":        "robot:\n  host: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			config := defaultConfig()
			assert.Error(t, config.load(writeConfig(t, content)))
		})
	}

	config := defaultConfig()
	assert.Error(t, config.load(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
