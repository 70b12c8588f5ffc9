package config

// Options is the install configuration built once from the command line.
// It is passed by value and never mutated after construction.
// - Quiet: suppress informational output and installer output.
// - Sudo: prepend the elevation wrapper to install commands.
// - Prefix: custom install location (Linux and macOS only). Empty means the default location.
// - Noop: only compare versions, never install.
// - Debug: enable debug logging.
type Options struct {
	Quiet  bool
	Sudo   bool
	Prefix string
	Noop   bool
	Debug  bool
}

// Downloads holds the per platform download URL templates.
// Each template contains a single %s that is replaced by the version string.
type Downloads struct {
	Linux   string `yaml:"linux"`
	Darwin  string `yaml:"darwin"`
	Windows string `yaml:"windows"`
}

// Settings is the optional YAML settings file.
// Install options set here act as defaults and are overridden by command line flags.
type Settings struct {
	ChangelogURL string    `yaml:"changelog_url"`
	Binary       string    `yaml:"binary"`
	Download     Downloads `yaml:"download"`
	Sudo         bool      `yaml:"sudo"`
	Prefix       string    `yaml:"prefix"`
	Quiet        bool      `yaml:"quiet"`
}

// Flags carries the raw command line values along with whether each was set explicitly.
type Flags struct {
	Noop      bool
	Quiet     bool
	QuietSet  bool
	Sudo      bool
	SudoSet   bool
	Prefix    string
	PrefixSet bool
	Debug     bool
}
