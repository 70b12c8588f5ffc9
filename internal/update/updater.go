package update

import (
	"context"
	"errors"
	"fmt"

	"awscli-update/internal/config"
	"awscli-update/internal/installer"
	"awscli-update/internal/logger"
	"awscli-update/internal/version"
)

// LatestFetcher discovers the newest published version. A nil version with a nil
// error means the source did not name a version.
type LatestFetcher interface {
	FetchLatest(ctx context.Context) (*version.Version, error)
}

// CurrentFetcher reports the installed version, nil when not installed.
type CurrentFetcher interface {
	FetchCurrent(ctx context.Context) (*version.Version, error)
}

// Updater compares the installed AWS CLI against the latest release and installs
// the latest release when they differ.
type Updater struct {
	latest    LatestFetcher
	current   CurrentFetcher
	installer installer.Installer
	opts      config.Options
}

// New creates an Updater.
func New(latest LatestFetcher, current CurrentFetcher, inst installer.Installer, opts config.Options) *Updater {
	return &Updater{
		latest:    latest,
		current:   current,
		installer: inst,
		opts:      opts,
	}
}

// Run compares only when the noop option is set, otherwise compares and updates.
func (u *Updater) Run(ctx context.Context) error {
	if u.opts.Noop {
		return u.CompareOnly(ctx)
	}
	return u.CompareAndUpdate(ctx)
}

// CompareOnly prints the installed and latest versions without installing anything.
func (u *Updater) CompareOnly(ctx context.Context) error {
	current, latest, err := u.fetchVersions(ctx)
	if err != nil {
		return err
	}
	if latest == nil {
		logger.Error("failed to fetch latest version. aborting.\n")
		return nil
	}

	logger.Print("current version: %s\n", current.Display())
	logger.Print("latest  version: %s\n", latest.Display())
	return nil
}

// CompareAndUpdate installs the latest version when the AWS CLI is missing or outdated.
// Discovery failures and refusals are reported and end the run without an error;
// download, extraction and installer failures are returned.
func (u *Updater) CompareAndUpdate(ctx context.Context) error {
	current, latest, err := u.fetchVersions(ctx)
	if err != nil {
		return err
	}

	switch {
	case latest == nil:
		logger.Error("failed to fetch latest version. aborting.\n")
		return nil
	case current != nil && !current.IsV2():
		logger.Error("AWS CLI v1 installed. Remove AWS CLI v1 first. aborting\n")
		return nil
	case current == nil:
		logger.Info("installing AWS CLI version %s\n", latest)
	case !current.Equal(latest):
		if current.Compare(latest) > 0 {
			logger.Warn("[WARN] Installed version %s is newer than the latest changelog entry %s\n", current, latest)
		}
		logger.Info("updating AWS CLI from version %s to %s\n", current, latest)
	default:
		logger.Info("awscli already on latest version. skipping.\n")
		return nil
	}

	return u.install(ctx, latest)
}

func (u *Updater) install(ctx context.Context, v *version.Version) error {
	err := u.installer.Install(ctx, v, u.opts)
	if errors.Is(err, installer.ErrRefused) {
		logger.Error("%v. aborting\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to install AWS CLI %s: %w", v, err)
	}
	logger.Debug("[DEBUG] Installed AWS CLI %s\n", v)
	return nil
}

// fetchVersions queries the installed version first, then the latest one.
// Errors from the remote source only mean the latest version is unknown.
func (u *Updater) fetchVersions(ctx context.Context) (current, latest *version.Version, err error) {
	current, err = u.current.FetchCurrent(ctx)
	if err != nil {
		return nil, nil, err
	}

	latest, err = u.latest.FetchLatest(ctx)
	if err != nil {
		logger.Debug("[DEBUG] Fetching latest version failed: %v\n", err)
		return current, nil, nil
	}
	return current, latest, nil
}
