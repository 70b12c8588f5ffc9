package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"awscli-update/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultChangelogURL is the rendered changelog of the AWS CLI v2 branch.
	DefaultChangelogURL = "https://github.com/aws/aws-cli/blob/v2/CHANGELOG.rst"
	// DefaultBinary is the executable queried for the installed version.
	DefaultBinary = "aws"

	linuxX86URL   = "https://awscli.amazonaws.com/awscli-exe-linux-x86_64-%s.zip"
	linuxArm64URL = "https://awscli.amazonaws.com/awscli-exe-linux-aarch64-%s.zip"
	darwinURL     = "https://awscli.amazonaws.com/AWSCLIV2-%s.pkg"
	windowsURL    = "https://awscli.amazonaws.com/AWSCLIV2-%s.msi"
)

// DefaultSettings returns the built-in settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		ChangelogURL: DefaultChangelogURL,
		Binary:       DefaultBinary,
		Download: Downloads{
			Linux:   LinuxDownloadURL(runtime.GOARCH),
			Darwin:  darwinURL,
			Windows: windowsURL,
		},
	}
}

// LinuxDownloadURL returns the official bundle URL template for goarch, or ""
// when AWS publishes no Linux bundle for it.
func LinuxDownloadURL(goarch string) string {
	switch goarch {
	case "amd64":
		return linuxX86URL
	case "arm64":
		return linuxArm64URL
	default:
		return ""
	}
}

// DefaultSettingsPath returns $XDG_CONFIG_HOME/awscli-update/config.yaml,
// falling back to ~/.config/awscli-update/config.yaml.
func DefaultSettingsPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "awscli-update", "config.yaml")
}

// LoadSettings reads the YAML settings file at path and overlays it on the defaults.
// A missing file is not an error: the defaults are returned unchanged.
// Empty values in the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("[DEBUG] No settings file at %s, using defaults\n", path)
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var file Settings
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return settings, fmt.Errorf("failed to unmarshal settings file %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded settings from %s\n", path)

	if file.ChangelogURL != "" {
		settings.ChangelogURL = file.ChangelogURL
	}
	if file.Binary != "" {
		settings.Binary = file.Binary
	}
	if file.Download.Linux != "" {
		settings.Download.Linux = file.Download.Linux
	}
	if file.Download.Darwin != "" {
		settings.Download.Darwin = file.Download.Darwin
	}
	if file.Download.Windows != "" {
		settings.Download.Windows = file.Download.Windows
	}
	settings.Sudo = file.Sudo
	settings.Prefix = file.Prefix
	settings.Quiet = file.Quiet

	return settings, nil
}

// Options merges the settings file defaults with the command line flags.
// Flags that were set explicitly always win. The prefix is returned as an absolute path.
func (s Settings) Options(f Flags) (Options, error) {
	opts := Options{
		Quiet:  s.Quiet,
		Sudo:   s.Sudo,
		Prefix: s.Prefix,
		Noop:   f.Noop,
		Debug:  f.Debug,
	}
	if f.QuietSet {
		opts.Quiet = f.Quiet
	}
	if f.SudoSet {
		opts.Sudo = f.Sudo
	}
	if f.PrefixSet {
		opts.Prefix = f.Prefix
	}
	if opts.Prefix != "" {
		abs, err := filepath.Abs(opts.Prefix)
		if err != nil {
			return opts, fmt.Errorf("failed to resolve prefix %s: %w", opts.Prefix, err)
		}
		opts.Prefix = abs
	}
	return opts, nil
}
