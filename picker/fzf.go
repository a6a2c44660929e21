package picker

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Fzf drives the external fzf binary for interactive selection.
type Fzf struct{}

// NewFzf verifies the fzf binary is available. Called before any file
// is touched so a missing picker is a clean fatal error.
func NewFzf() (*Fzf, error) {
	if _, err := exec.LookPath("fzf"); err != nil {
		return nil, ErrNotInstalled
	}
	return &Fzf{}, nil
}

func (f *Fzf) Pick(items []string, prompt string) (string, error) {
	out, err := f.run(items, prompt, false)
	if err != nil || len(out) == 0 {
		return "", err
	}
	return out[0], nil
}

func (f *Fzf) PickMulti(items []string, prompt string) ([]string, error) {
	return f.run(items, prompt, true)
}

func (f *Fzf) Confirm(message, yes, no string) (bool, error) {
	choice, err := f.Pick([]string{yes, no}, message+" ")
	if err != nil {
		return false, err
	}
	return choice == yes, nil
}

func (f *Fzf) run(items []string, prompt string, multi bool) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	args := []string{
		"--prompt", prompt,
		"--height", "100%",
		"--border",
		"--no-sort",
		"--reverse",
		"--info", "inline",
		"--ansi",
	}
	if multi {
		args = append(args,
			"--multi",
			"--bind", "ctrl-a:select-all",
			"--bind", "ctrl-d:deselect-all",
		)
	}

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(items, "\n") + "\n")
	// fzf draws its UI on the tty via stderr.
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case 1: // no match selected
				return nil, nil
			case 130: // aborted with ESC or Ctrl-C
				return nil, ErrCancelled
			}
		}
		return nil, fmt.Errorf("run fzf: %w", err)
	}

	var selections []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			selections = append(selections, line)
		}
	}
	return selections, nil
}
