// Package open launches URLs and files with the system handler or a chosen application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hydra-cli/hydra/constant"
)

// Run opens input with the default system handler and waits for completion.
func Run(input string) error {
	cmd, err := command(input, "")
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Start opens input with the default system handler without waiting.
func Start(input string) error {
	return StartWith(input, "")
}

// StartWith opens input with a specific application without waiting.
// An empty application name falls back to the default handler.
func StartWith(input, app string) error {
	cmd, err := command(input, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(input, app string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
		}
		// The 'start' command requires escaping '&' in multi-parameter URLs.
		escaped := strings.ReplaceAll(input, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", input), nil
		}
		return exec.Command("open", "-a", app, input), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", input), nil
		}
		return exec.Command(app, input), nil
	case constant.Android:
		if app == "" {
			return exec.Command("termux-open", input), nil
		}
		return exec.Command("termux-open", "--choose", input), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
