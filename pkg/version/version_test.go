package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want Release
	}{
		{"plain version", "v0.2.4", Release{Version: "v0.2.4", Build: 0}},
		{"version with build", "v0.2.4-build5", Release{Version: "v0.2.4", Build: 5}},
		{"missing v prefix", "0.2.4", Release{Version: "v0.2.4", Build: 0}},
		{"missing v prefix with build", "0.2.4-build12", Release{Version: "v0.2.4", Build: 12}},
		{"prerelease suffix excluded", "v1.0.0-rc1", Release{Version: "v1.0.0", Build: 0}},
		{"build after other segment", "v1.0.0-rc1-build3", Release{Version: "v1.0.0", Build: 3}},
		{"malformed build number", "v0.2.4-buildX", Release{Version: "v0.2.4", Build: 0}},
		{"empty tag", "", Release{Version: "v", Build: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTag(tt.tag))
		})
	}
}

func TestShort(t *testing.T) {
	assert.Equal(t, "0.2.4", ParseTag("v0.2.4-build5").Short())
	assert.Equal(t, "1.0.0", ParseTag("1.0.0").Short())
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		remote  string
		want    bool
	}{
		{"patch bump", "v0.2.3", "v0.2.4", true},
		{"patch downgrade", "v0.2.4", "v0.2.3", false},
		{"minor bump", "v0.2.9", "v0.3.0", true},
		{"major bump", "v0.9.9", "v1.0.0", true},
		{"identical", "v0.2.4", "v0.2.4", false},
		{"same version newer build", "v0.2.4-build4", "v0.2.4-build5", true},
		{"same version older build", "v0.2.4-build5", "v0.2.4-build4", false},
		{"same version same build", "v0.2.4-build5", "v0.2.4-build5", false},
		{"newer version older build", "v0.2.3-build9", "v0.2.4-build1", true},
		{"build only on remote", "v0.2.4", "v0.2.4-build1", true},
		{"invalid current differs", "vnightly", "v0.2.4", true},
		{"invalid remote differs", "v0.2.4", "vnightly", true},
		{"both invalid equal", "vnightly", "vnightly", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNewer(ParseTag(tt.current), ParseTag(tt.remote))
			assert.Equal(t, tt.want, got)
		})
	}
}
