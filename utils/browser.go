package utils

import (
	"os/exec"
	"runtime"
)

// OpenBrowser opens the given URL in the default browser. Best effort; the
// server keeps running regardless.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil && Sugar != nil {
		Sugar.Warnf("could not open browser: %v", err)
	}
}
