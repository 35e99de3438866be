package ux

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Terminal prints notifications to a writer (stderr by default) with
// timestamps and color.
type Terminal struct {
	Out io.Writer
}

func (t *Terminal) w() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}

// Infof prints an informational message.
func (t *Terminal) Infof(format string, args ...any) {
	fmt.Fprintf(t.w(), "%s[%s]%s  %s\n", Dim, timestamp(), Reset, fmt.Sprintf(format, args...))
}

// Warnf prints a scoped warning. Warnings accompany a publish attempt
// without failing it.
func (t *Terminal) Warnf(format string, args ...any) {
	fmt.Fprintf(t.w(), "%s[%s]%s  %s⚠ %s%s\n", Dim, timestamp(), Reset, Yellow, fmt.Sprintf(format, args...), Reset)
}

// Errorf prints a fatal-condition message.
func (t *Terminal) Errorf(format string, args ...any) {
	fmt.Fprintf(t.w(), "%s[%s]%s  %s✗ %s%s\n", Dim, timestamp(), Reset, Red, fmt.Sprintf(format, args...), Reset)
}

// Successf prints a publish success message.
func (t *Terminal) Successf(format string, args ...any) {
	fmt.Fprintf(t.w(), "%s[%s]%s  %s✓ %s%s\n", Dim, timestamp(), Reset, Green, fmt.Sprintf(format, args...), Reset)
}
