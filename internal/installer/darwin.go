package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"awscli-update/internal/config"
	"awscli-update/internal/logger"
	"awscli-update/internal/version"
	"howett.net/plist"
)

// linkedBinaries are symlinked into <prefix>/bin after a custom location install.
var linkedBinaries = []string{"aws", "aws_completer"}

// Darwin installs the AWS CLI from the official .pkg with the macOS installer command.
type Darwin struct {
	base
}

// Install downloads the package into a temp directory and runs installer(8).
// With a prefix the package is installed for the current user at <prefix>/aws-cli
// and the binaries are linked into <prefix>/bin.
func (d *Darwin) Install(ctx context.Context, v *version.Version, opts config.Options) error {
	if err := requireV2(v); err != nil {
		return err
	}

	tmp, err := makeTempDir(d.tempBase)
	if err != nil {
		return err
	}
	defer removeTempDir(tmp)

	url := d.downloadURL(v)
	pkg := filepath.Join(tmp, "AWSCLIV2.pkg")
	logger.Info("[INFO] Downloading %s\n", url)
	if err := downloadFile(ctx, d.httpClient, url, pkg); err != nil {
		return err
	}

	cmd := newCommand(opts, "installer").arg("-pkg", pkg)
	if opts.Prefix != "" {
		choices := filepath.Join(tmp, "choices.xml")
		if err := writeChoiceChanges(choices, opts.Prefix); err != nil {
			return err
		}
		cmd.arg("-target", "CurrentUserHomeDirectory", "-applyChoiceChangesXML", choices)
	} else {
		cmd.arg("-target", "/")
	}

	if err := cmd.run(ctx, d.runner, opts.Quiet); err != nil {
		return err
	}

	if opts.Prefix == "" {
		return nil
	}
	return d.linkBinaries(ctx, opts)
}

// writeChoiceChanges writes the property list that relocates the package
// install to prefix (passed to installer -applyChoiceChangesXML).
func writeChoiceChanges(path, prefix string) error {
	choices := []map[string]string{{
		"choiceAttribute":  "customLocation",
		"attributeSetting": prefix,
		"choiceIdentifier": "default",
	}}
	data, err := plist.MarshalIndent(choices, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to encode choice changes: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Wrote choice changes to %s:\n%s\n", path, data)
	return nil
}

// linkBinaries creates <prefix>/bin and replaces the aws and aws_completer
// symlinks there. With --sudo the work is done through the elevation wrapper.
func (d *Darwin) linkBinaries(ctx context.Context, opts config.Options) error {
	binDir := filepath.Join(opts.Prefix, "bin")

	if opts.Sudo {
		if err := newCommand(opts, "mkdir").arg("-p", binDir).run(ctx, d.runner, opts.Quiet); err != nil {
			return err
		}
		for _, name := range linkedBinaries {
			target := filepath.Join(opts.Prefix, "aws-cli", name)
			link := filepath.Join(binDir, name)
			if err := newCommand(opts, "ln").arg("-sfn", target, link).run(ctx, d.runner, opts.Quiet); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", binDir, err)
	}
	for _, name := range linkedBinaries {
		target := filepath.Join(opts.Prefix, "aws-cli", name)
		link := filepath.Join(binDir, name)
		if err := os.Remove(link); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", link, err)
		}
		if err := os.Symlink(target, link); err != nil {
			return fmt.Errorf("failed to link %s: %w", link, err)
		}
		logger.Debug("[DEBUG] Linked %s -> %s\n", link, target)
	}
	return nil
}
