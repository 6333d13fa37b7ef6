package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	i := Info{CommitHash: "0123456789abcdef", BuildTime: "2024-06-15", Version: "v1.2.0"}
	assert.Equal(t, "gnudate v1.2.0 (commit 0123456, built 2024-06-15)", i.String())
	assert.Equal(t, "0123456", i.Short())

	i = Info{CommitHash: "abc", BuildTime: "unknown", Version: "dev"}
	assert.Equal(t, "gnudate dev (commit abc, built unknown)", i.String())
	assert.Equal(t, "abc", i.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.True(t, strings.HasPrefix(info.String(), "gnudate "))
}
