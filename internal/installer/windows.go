package installer

import (
	"context"
	"path/filepath"

	"awscli-update/internal/config"
	"awscli-update/internal/logger"
	"awscli-update/internal/version"
)

// Windows installs the AWS CLI from the official .msi in passive mode.
// Elevation and custom prefixes are not supported.
type Windows struct {
	base
}

// Install downloads the msi into a temp directory and runs msiexec /passive.
func (w *Windows) Install(ctx context.Context, v *version.Version, opts config.Options) error {
	if err := requireV2(v); err != nil {
		return err
	}
	if opts.Sudo || opts.Prefix != "" {
		return ErrUnsupportedOptions
	}

	tmp, err := makeTempDir(w.tempBase)
	if err != nil {
		return err
	}
	defer removeTempDir(tmp)

	url := w.downloadURL(v)
	msi := filepath.Join(tmp, "AWSCLIV2.msi")
	logger.Info("[INFO] Downloading %s\n", url)
	if err := downloadFile(ctx, w.httpClient, url, msi); err != nil {
		return err
	}

	cmd := newCommand(opts, "msiexec.exe").arg("/i", msi, "/passive")
	return cmd.run(ctx, w.runner, opts.Quiet)
}
