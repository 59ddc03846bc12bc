package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NilError(t, err)
	assert.Equal(t, cfg.DeviceName, "GuideCane")
	assert.Equal(t, cfg.Pins.Trigger, uint8(23))
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.NilError(t, err)
	assert.Equal(t, cfg.LogLevel, "info")
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	body := `{"deviceName":"GuideCane-2","pins":{"trigger":5,"echo":6,"buzzer":12,"button":13}}`
	assert.NilError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.DeviceName, "GuideCane-2")
	assert.Equal(t, cfg.Pins.Button, uint8(13))
	// untouched fields keep their defaults
	assert.Equal(t, cfg.LogLevel, "info")
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	assert.NilError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}
