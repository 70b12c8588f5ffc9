package installer

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"awscli-update/internal/config"
	"awscli-update/internal/logger"
	"awscli-update/internal/version"
)

// Linux installs the AWS CLI from the official zip bundle using its bundled install script.
type Linux struct {
	base
}

// Install downloads and extracts the bundle into a temp directory and runs
// aws/install --update, optionally with a custom install and bin directory.
func (l *Linux) Install(ctx context.Context, v *version.Version, opts config.Options) error {
	if err := requireV2(v); err != nil {
		return err
	}

	tmp, err := makeTempDir(l.tempBase)
	if err != nil {
		return err
	}
	defer removeTempDir(tmp)

	url := l.downloadURL(v)
	archive := filepath.Join(tmp, path.Base(url))
	logger.Info("[INFO] Downloading %s\n", url)
	if err := downloadFile(ctx, l.httpClient, url, archive); err != nil {
		return err
	}

	if err := ExtractArchive(archive, tmp); err != nil {
		return fmt.Errorf("failed to extract %s: %w", archive, err)
	}

	script := filepath.Join(tmp, "aws", "install")
	if err := makeExecutable(script); err != nil {
		return fmt.Errorf("failed to make %s executable: %w", script, err)
	}
	dist := filepath.Join(tmp, "aws", "dist")
	if err := makeExecutable(dist); err != nil {
		return fmt.Errorf("failed to make %s executable: %w", dist, err)
	}

	cmd := newCommand(opts, script).
		arg("--update").
		argIf(opts.Prefix != "",
			"--install-dir", filepath.Join(opts.Prefix, "aws-cli"),
			"--bin-dir", filepath.Join(opts.Prefix, "bin"))
	return cmd.run(ctx, l.runner, opts.Quiet)
}
