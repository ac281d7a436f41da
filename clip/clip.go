// Package clip copies text to the system clipboard through whichever
// platform command is available.
package clip

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type command struct {
	name string
	args []string
}

func candidates() []command {
	switch runtime.GOOS {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{
			{name: "clip.exe"},
			{name: "powershell", args: []string{"-NoProfile", "-Command", "Set-Clipboard"}},
		}
	default:
		// Wayland first, then the X11 fallbacks.
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-in", "-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

// Copy writes text to the clipboard. It tries each candidate command in order
// and fails only when none is installed or all of them error out.
func Copy(text string) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lastErr error
	for _, c := range candidates() {
		if _, err := exec.LookPath(c.name); err != nil {
			continue
		}
		cmd := exec.Command(c.name, c.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no clipboard command available (install wl-copy or xclip)")
}
