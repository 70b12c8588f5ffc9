package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelogPage = `<html><body>
<div id="readme"><article class="markdown-body">
<h1>CHANGELOG</h1>
<h2><a href="#2-20-0"></a>2.20.0</h2>
<ul><li>api-change:s3: Update</li></ul>
<h2>2.19.5</h2>
</article></div>
</body></html>`

func TestParseChangelog(t *testing.T) {
	tests := []struct {
		name string
		page string
		want *Version
	}{
		{name: "first heading wins", page: changelogPage, want: New("2.20.0", true)},
		{name: "heading with trailing text", page: `<div id="readme"><article><h2> 2.1.3 (2021-01-01)</h2></article></div>`, want: New("2.1.3", true)},
		{name: "no readme region", page: `<html><body><article><h2>2.20.0</h2></article></body></html>`},
		{name: "no heading", page: `<div id="readme"><article><p>2.20.0</p></article></div>`},
		{name: "heading not a version", page: `<div id="readme"><article><h2>Unreleased</h2></article></div>`},
		{name: "two component version", page: `<div id="readme"><article><h2>2.20</h2></article></div>`},
		{name: "version not at start", page: `<div id="readme"><article><h2>Release 2.20.0</h2></article></div>`},
		{name: "empty document", page: ``},
		{name: "not html", page: "\x00\x01\x02 garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseChangelog(strings.NewReader(tt.page))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(got), "got %s v2=%v", got, got.IsV2())
		})
	}
}

func TestParseToolOutput(t *testing.T) {
	tests := []struct {
		output string
		want   string
		v2     bool
		found  bool
	}{
		{output: "aws-cli/2.15.30 Python/3.11.8 Linux/6.1.0 exe/x86_64.ubuntu.22", want: "2.15.30", v2: true, found: true},
		{output: "aws-cli/2.15.30 Python/3.11", want: "2.15.30", v2: true, found: true},
		{output: "aws-cli/1.18.0 Python/2.7.16 Darwin/19.6.0 botocore/1.17.0", want: "1.18.0", v2: false, found: true},
		{output: "aws-cli/20.1.0 Python/3.11", want: "20.1.0", v2: false, found: true},
		{output: "command not found: aws", found: false},
		{output: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			got := ParseToolOutput(tt.output)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.v2, got.IsV2())
		})
	}
}

func TestVersionEqual(t *testing.T) {
	v := New("2.15.30", true)

	assert.True(t, v.Equal(New("2.15.30", true)))
	assert.False(t, v.Equal(New("2.15.30", false)), "flag must match")
	assert.False(t, v.Equal(New("2.15.31", true)), "string must match")
	assert.False(t, v.Equal(nil))

	var none *Version
	assert.False(t, none.Equal(v))
	assert.False(t, none.Equal(nil))
}

func TestVersionDisplay(t *testing.T) {
	assert.Equal(t, "2.15.30", New("2.15.30", true).Display())
	assert.Equal(t, "1.18.0 (AWS CLI v1!)", New("1.18.0", false).Display())
	assert.Equal(t, "None", (*Version)(nil).Display())
}

func TestNilVersion(t *testing.T) {
	var v *Version
	assert.Equal(t, "", v.String())
	assert.False(t, v.IsV2())
	assert.Equal(t, 0, v.Compare(nil))
	assert.Equal(t, -1, v.Compare(New("2.0.0", true)))
	assert.Equal(t, 1, New("2.0.0", true).Compare(v))
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2.15.30", "2.15.30", 0},
		{"2.15.30", "2.15.4", 1},
		{"2.9.0", "2.10.0", -1},
		{"1.18.0", "2.0.0", -1},
		{"abc", "abd", -1},
	}

	for _, tt := range tests {
		got := New(tt.a, true).Compare(New(tt.b, true))
		assert.Equal(t, tt.want, got, "Compare(%s, %s)", tt.a, tt.b)
	}
}
