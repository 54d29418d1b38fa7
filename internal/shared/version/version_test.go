package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize("v1.2.3"))
	assert.Equal(t, "v0.4.0", Normalize(" 0.4.0 "))
}

func TestIsRelease(t *testing.T) {
	assert.True(t, IsRelease("1.2.3"))
	assert.True(t, IsRelease("v2.0.0"))
	assert.False(t, IsRelease("v2.0.0-rc.1"))
	assert.False(t, IsRelease("dev"))
	assert.False(t, IsRelease(""))
}

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "dev", "unknown"
	assert.Equal(t, "dev", String())

	Version, Commit = "1.4", "a1b2c3d"
	assert.Equal(t, "v1.4.0 (a1b2c3d)", String())

	Version, Commit = "v1.5.0-beta.2", ""
	assert.Equal(t, "v1.5.0-beta.2", String())
}
