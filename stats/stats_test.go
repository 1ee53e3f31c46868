package stats

import (
	"bytes"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCPUTime(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /proc")
	}

	user, sys, err := CPUTime()

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, user, time.Duration(0))
	assert.GreaterOrEqual(t, sys, time.Duration(0))
}

func TestReport(t *testing.T) {
	var out bytes.Buffer

	Report(&out, 5*time.Millisecond)

	assert.Contains(t, out.String(), "elapsed")
}
