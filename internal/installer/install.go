package installer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"awscli-update/internal/config"
	"awscli-update/internal/version"
)

// Refusals happen before any download, subprocess or filesystem change.
// All of them wrap ErrRefused.
var (
	ErrRefused             = errors.New("installation refused")
	ErrNotV2               = fmt.Errorf("%w: this tool can only install AWS CLI v2", ErrRefused)
	ErrUnsupportedOptions  = fmt.Errorf("%w: --sudo and --prefix are not supported on Windows", ErrRefused)
	ErrUnsupportedPlatform = fmt.Errorf("%w: unsupported platform", ErrRefused)
)

// Installer downloads and installs a given AWS CLI version on the current platform.
type Installer interface {
	Install(ctx context.Context, v *version.Version, opts config.Options) error
}

// base holds what every platform variant shares.
type base struct {
	urlTemplate string
	httpClient  HTTPClient
	runner      Runner
	tempBase    string
}

// Option configures the installer returned by New.
type Option func(*base)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(h HTTPClient) Option {
	return func(b *base) {
		if h != nil {
			b.httpClient = h
		}
	}
}

// WithRunner sets the runner used to execute install commands.
func WithRunner(r Runner) Option {
	return func(b *base) {
		if r != nil {
			b.runner = r
		}
	}
}

// WithTempDir sets the directory under which per-install temp directories are created.
func WithTempDir(dir string) Option {
	return func(b *base) {
		b.tempBase = dir
	}
}

// New returns the installer for goos ("linux", "darwin" or "windows") using the
// matching download URL template. Any other platform, or a platform without a
// download URL template, gets an installer that refuses.
func New(goos string, downloads config.Downloads, opts ...Option) Installer {
	b := base{
		httpClient: http.DefaultClient,
		runner:     execRunner{},
	}
	for _, opt := range opts {
		opt(&b)
	}

	var inst Installer
	switch goos {
	case "linux":
		b.urlTemplate = downloads.Linux
		inst = &Linux{base: b}
	case "darwin":
		b.urlTemplate = downloads.Darwin
		inst = &Darwin{base: b}
	case "windows":
		b.urlTemplate = downloads.Windows
		inst = &Windows{base: b}
	default:
		return unsupported{platform: goos}
	}
	if b.urlTemplate == "" {
		return unsupported{platform: goos + "/" + runtime.GOARCH}
	}
	return inst
}

// downloadURL substitutes the version into the platform's URL template.
func (b base) downloadURL(v *version.Version) string {
	return fmt.Sprintf(b.urlTemplate, v.String())
}

// requireV2 rejects missing and v1 versions.
func requireV2(v *version.Version) error {
	if v == nil || !v.IsV2() {
		return ErrNotV2
	}
	return nil
}

type unsupported struct {
	platform string
}

func (u unsupported) Install(context.Context, *version.Version, config.Options) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, u.platform)
}
