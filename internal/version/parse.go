package version

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// changelogHeading selects the release headings of the rendered CHANGELOG.rst.
const changelogHeading = "#readme article h2"

var (
	changelogVersionRe = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+`)
	toolOutputRe       = regexp.MustCompile(`aws-cli/([0-9.]+)`)
	v2Re               = regexp.MustCompile(`^2\.[0-9]+\.[0-9]+`)
)

// ParseChangelog extracts the latest release from the changelog HTML page.
// The first second-level heading of the readme article names the newest release.
// It returns nil when the page has no readme article, no heading, or the heading
// does not start with a MAJOR.MINOR.PATCH version. The changelog tracks the v2
// branch, so any version found here is a v2 version.
func ParseChangelog(r io.Reader) *Version {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil
	}
	heading := doc.Find(changelogHeading).First()
	if heading.Length() == 0 {
		return nil
	}
	match := changelogVersionRe.FindString(strings.TrimSpace(heading.Text()))
	if match == "" {
		return nil
	}
	return New(match, true)
}

// ParseToolOutput extracts the installed version from `aws --version` output,
// e.g. "aws-cli/2.15.30 Python/3.11.8 Linux/6.1 exe/x86_64".
// It returns nil when the output carries no aws-cli/<version> token.
func ParseToolOutput(text string) *Version {
	m := toolOutputRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return New(m[1], v2Re.MatchString(m[1]))
}
