package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v, commit, built string) {
	t.Helper()
	oldV, oldC, oldB := Version, Commit, BuildTime
	Version, Commit, BuildTime = v, commit, built
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })
}

func settings(kv map[string]string) buildSetting {
	return func(key string) (string, bool) {
		v, ok := kv[key]
		return v, ok
	}
}

func TestFormatVersion(t *testing.T) {
	withVersion(t, "1.2.3", "", "")
	assert.Equal(t, "1.2.3 (development)", FormatVersion())

	Commit = "abc1234"
	assert.Equal(t, "1.2.3 (commit: abc1234)", FormatVersion())

	BuildTime = "2024-05-15T06:00:00Z"
	assert.Equal(t, "1.2.3 (commit: abc1234, built at: 2024-05-15T06:00:00Z)", FormatVersion())
}

func TestApplyBuildSettings_FromVCS(t *testing.T) {
	withVersion(t, devVersion, "", "")

	applyBuildSettings(settings(map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.time":     "2024-05-15T08:00:00+02:00",
		"vcs.tag":      "v2.0.1",
		"vcs.modified": "true",
	}))

	assert.Equal(t, "2.0.1-dirty", Version)
	assert.Equal(t, "0123456", Commit)
	assert.Equal(t, "2024-05-15T06:00:00Z", BuildTime)
}

func TestApplyBuildSettings_LdflagsWin(t *testing.T) {
	withVersion(t, "3.1.0", "", "")

	applyBuildSettings(settings(map[string]string{"vcs.tag": "v9.9.9", "vcs.revision": "fedcba9876"}))

	assert.Equal(t, "3.1.0", Version)
	assert.Empty(t, Commit)
}

func TestAppID(t *testing.T) {
	withVersion(t, "1.0.0", "", "")
	assert.Equal(t, "aws-cost-report/1.0.0", AppID())
}
