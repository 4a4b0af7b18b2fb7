package common

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// WriteCrashFile writes a crash report for a recovered panic into dir and returns its path.
// The report is echoed to stderr when the file cannot be written.
func WriteCrashFile(dir string, panicVal any, stackTrace string) (string, error) {
	var report bytes.Buffer
	report.WriteString("=== SALECAPTION CRASH REPORT ===\n")
	report.WriteString(fmt.Sprintf("Time: %s\n", time.Now().Format(time.RFC3339)))
	report.WriteString(fmt.Sprintf("Version: %s\n", GetFullVersion()))
	report.WriteString(fmt.Sprintf("Platform: %s/%s\n\n", runtime.GOOS, runtime.GOARCH))
	report.WriteString("=== PANIC VALUE ===\n")
	report.WriteString(fmt.Sprintf("%v\n\n", panicVal))
	report.WriteString("=== STACK TRACE ===\n")
	report.WriteString(stackTrace)
	report.WriteString("\n=== END CRASH REPORT ===\n")

	if dir == "" {
		dir = "logs"
	}
	crashPath := filepath.Join(dir, fmt.Sprintf("crash-%s.log", time.Now().Format("2006-01-02T15-04-05")))

	err := os.MkdirAll(dir, 0755)
	if err == nil {
		err = os.WriteFile(crashPath, report.Bytes(), 0644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to write crash file: %v\n%s", err, report.String())
		return "", err
	}

	fmt.Fprintf(os.Stderr, "\n!!! FATAL CRASH - Report saved to: %s !!!\nPanic: %v\n", crashPath, panicVal)
	return crashPath, nil
}

// GetStackTrace returns the current goroutine's stack trace.
func GetStackTrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// RecoverWithCrashFile is a helper for deferred panic recovery that writes a crash file.
// Usage: defer common.RecoverWithCrashFile("logs")
func RecoverWithCrashFile(dir string) {
	if r := recover(); r != nil {
		WriteCrashFile(dir, r, GetStackTrace())
		os.Exit(1)
	}
}
