// Package tests contains unit tests for version key parsing and ordering.
package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thirukguru/relnotes/model"
)

// TestParseVersion tests strict MAJOR.MINOR.PATCH parsing
func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		major   int
		minor   int
		patch   int
	}{
		{name: "release key", input: "0.13.1", major: 0, minor: 13, patch: 1},
		{name: "large components", input: "12.0.44", major: 12, minor: 0, patch: 44},
		{name: "v prefix rejected", input: "v1.2.3", wantErr: true},
		{name: "missing patch", input: "1.2", wantErr: true},
		{name: "leading zero rejected", input: "1.02.3", wantErr: true},
		{name: "prerelease suffix rejected", input: "1.2.3-rc1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, minor, patch, err := model.ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
			assert.Equal(t, tt.patch, patch)
		})
	}
}

// TestCompareVersions tests numeric ordering of version keys
func TestCompareVersions(t *testing.T) {
	assert.Negative(t, model.CompareVersions("0.9.0", "0.13.1"))
	assert.Positive(t, model.CompareVersions("1.0.0", "0.44.0"))
	assert.Zero(t, model.CompareVersions("0.13.1", "0.13.1"))

	// Invalid keys compare below valid ones so a newest-first sort puts
	// broken records at the bottom.
	assert.Negative(t, model.CompareVersions("not-a-version", "0.1.0"))
	assert.Positive(t, model.CompareVersions("0.1.0", "also-bad"))
}
