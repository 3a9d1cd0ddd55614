package dhthold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	prevCommit, prevDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = prevCommit, prevDate })

	GitCommit, BuildDate = "", ""
	assert.Equal(t, "dhthold "+Version, VersionInfo())

	GitCommit = "0123456789abcdef"
	BuildDate = "2026-01-02"
	assert.Equal(t, "dhthold "+Version+" (01234567) built 2026-01-02", VersionInfo())

	GitCommit = "abc"
	BuildDate = ""
	assert.Equal(t, "dhthold "+Version+" (abc)", VersionInfo())
}
