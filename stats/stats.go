// Package stats reports process run-time usage after a program ends
package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tklauser/go-sysconf"
)

// CPUTime returns the user and system CPU this process has
// consumed, read from /proc/self/stat
func CPUTime() (user, sys time.Duration, err error) {
	clk, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, err
	}

	raw, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}

	// the comm field can hold spaces, counting restarts after
	// its closing paren
	line := string(raw)
	i := strings.LastIndexByte(line, ')')
	if i < 0 {
		return 0, 0, fmt.Errorf("malformed stat line")
	}
	fields := strings.Fields(line[i+1:])
	if len(fields) < 13 {
		return 0, 0, fmt.Errorf("malformed stat line")
	}

	// utime and stime are the 14th and 15th fields of the full line
	ut, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	st, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	tick := time.Second / time.Duration(clk)
	return time.Duration(ut) * tick, time.Duration(st) * tick, nil
}

// Report writes a one-line usage summary
func Report(w io.Writer, elapsed time.Duration) {
	user, sys, err := CPUTime()
	if err != nil {
		fmt.Fprintf(w, "elapsed %v (cpu usage unavailable: %v)\n", elapsed, err)
		return
	}
	fmt.Fprintf(w, "elapsed %v  user %v  system %v\n", elapsed, user, sys)
}
