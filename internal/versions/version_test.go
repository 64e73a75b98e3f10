package versions

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	t.Parallel()

	vcs := func() map[string]string {
		return map[string]string{
			"vcs.revision": "0123456789abcdef",
			"vcs.time":     "2026-09-30T08:15:00Z",
		}
	}

	tests := []struct {
		name      string
		version   string
		commit    string
		buildDate string
		want      Info
	}{
		{
			name:      "dev build falls back to vcs settings",
			version:   "dev",
			commit:    unknownStr,
			buildDate: unknownStr,
			want: Info{
				Version:   "build-01234567",
				Commit:    "0123456789abcdef",
				BuildDate: "2026-09-30 08:15:00 UTC",
			},
		},
		{
			name:      "release build keeps ldflags values",
			version:   "v1.4.0",
			commit:    "feedface",
			buildDate: "2026-10-01T00:00:00Z",
			want: Info{
				Version:   "v1.4.0",
				Commit:    "feedface",
				BuildDate: "2026-10-01 00:00:00 UTC",
				Release:   true,
			},
		},
		{
			name:      "unparseable build date is kept",
			version:   "1.5.0-rc.1",
			commit:    "feedface",
			buildDate: "yesterday",
			want: Info{
				Version:   "1.5.0-rc.1",
				Commit:    "feedface",
				BuildDate: "yesterday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildInfo(tt.version, tt.commit, tt.buildDate, vcs)
			tt.want.GoVersion = runtime.Version()
			tt.want.Platform = runtime.GOOS + "/" + runtime.GOARCH
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRelease(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRelease("1.0.0"))
	assert.True(t, IsRelease("v2.3.1"))
	assert.False(t, IsRelease("1.0.0-alpha"))
	assert.False(t, IsRelease("build-01234567"))
	assert.False(t, IsRelease(""))
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()

	info := GetVersionInfo()
	assert.NotEmpty(t, info.Version)
	assert.Contains(t, info.String(), info.Version)
}
