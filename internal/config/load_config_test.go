package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsEmptyPathUsesDefaults(t *testing.T) {
	settings, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultChangelogURL, settings.ChangelogURL)
	assert.Equal(t, DefaultBinary, settings.Binary)
}

func TestLoadSettingsOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `changelog_url: https://mirror.example.com/CHANGELOG.html
download:
  linux: https://mirror.example.com/awscli-%s.tar.xz
sudo: true
prefix: /opt/aws
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	defaults := DefaultSettings()
	assert.Equal(t, "https://mirror.example.com/CHANGELOG.html", settings.ChangelogURL)
	assert.Equal(t, "https://mirror.example.com/awscli-%s.tar.xz", settings.Download.Linux)
	assert.Equal(t, defaults.Download.Darwin, settings.Download.Darwin)
	assert.Equal(t, defaults.Download.Windows, settings.Download.Windows)
	assert.Equal(t, DefaultBinary, settings.Binary)
	assert.True(t, settings.Sudo)
	assert.Equal(t, "/opt/aws", settings.Prefix)
	assert.False(t, settings.Quiet)
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("download: [unterminated"), 0o644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal settings file")
}

func TestSettingsOptionsFlagsOverrideFile(t *testing.T) {
	settings := DefaultSettings()
	settings.Sudo = true
	settings.Quiet = true
	settings.Prefix = "/opt/aws"

	opts, err := settings.Options(Flags{})
	require.NoError(t, err)
	assert.Equal(t, Options{Quiet: true, Sudo: true, Prefix: "/opt/aws"}, opts)

	opts, err = settings.Options(Flags{
		Noop:      true,
		Sudo:      false,
		SudoSet:   true,
		Quiet:     false,
		QuietSet:  true,
		Prefix:    "",
		PrefixSet: true,
		Debug:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, Options{Noop: true, Debug: true}, opts)
}

func TestSettingsOptionsResolvesRelativePrefix(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	opts, err := DefaultSettings().Options(Flags{Prefix: "local", PrefixSet: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "local"), opts.Prefix)
}

func TestDefaultSettingsPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "awscli-update", "config.yaml"), DefaultSettingsPath())
}

func TestLinuxDownloadURL(t *testing.T) {
	tests := []struct {
		goarch string
		want   string
	}{
		{"amd64", "https://awscli.amazonaws.com/awscli-exe-linux-x86_64-%s.zip"},
		{"arm64", "https://awscli.amazonaws.com/awscli-exe-linux-aarch64-%s.zip"},
		{"386", ""},
		{"riscv64", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LinuxDownloadURL(tt.goarch), tt.goarch)
	}
}
