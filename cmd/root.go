package cmd

import (
	"os"
	"runtime"

	"awscli-update/internal/config"
	"awscli-update/internal/installer"
	"awscli-update/internal/local"
	"awscli-update/internal/logger"
	"awscli-update/internal/remote"
	"awscli-update/internal/update"
	"github.com/spf13/cobra"
)

// Version is the tool's own version, set at build time with
// -ldflags "-X awscli-update/cmd.Version=...".
var Version = "dev"

// flags holds the raw command line values.
var flags struct {
	noop       bool
	quiet      bool
	sudo       bool
	prefix     string
	debug      bool
	configPath string
}

// rootCmd compares the installed AWS CLI with the latest release and updates it.
var rootCmd = &cobra.Command{
	Use:     "awscli-update",
	Short:   "Update AWS CLI v2 if there is a more recent version available",
	Version: Version,
	Args:    cobra.NoArgs,

	SilenceUsage: true,

	// PersistentPreRun initializes logging before anything else runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(flags.debug, flags.quiet)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings(flags.configPath)
		if err != nil {
			return err
		}

		opts, err := settings.Options(config.Flags{
			Noop:      flags.noop,
			Quiet:     flags.quiet,
			QuietSet:  cmd.Flags().Changed("quiet"),
			Sudo:      flags.sudo,
			SudoSet:   cmd.Flags().Changed("sudo"),
			Prefix:    flags.prefix,
			PrefixSet: cmd.Flags().Changed("prefix"),
			Debug:     flags.debug,
		})
		if err != nil {
			return err
		}
		// Quiet may also come from the settings file.
		logger.Init(opts.Debug, opts.Quiet)
		logger.Debug("[DEBUG] Options: %+v\n", opts)

		updater := update.New(
			remote.NewFetcher(remote.WithURL(settings.ChangelogURL)),
			local.NewFetcher(settings.Binary),
			installer.New(runtime.GOOS, settings.Download),
			opts,
		)
		return updater.Run(cmd.Context())
	},
}

// init registers the command line flags.
func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flags.noop, "noop", "n", false, "only compare versions but don't install")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress informational output")
	f.BoolVar(&flags.sudo, "sudo", false, "run install commands with sudo (Linux and macOS)")
	f.StringVar(&flags.prefix, "prefix", "", "custom install location (Linux and macOS)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultSettingsPath(), "Path to settings file")
}

// Execute runs the root command. Any returned error ends the process with exit status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
