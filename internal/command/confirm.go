package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmationRequiredError is returned when a destructive command runs
// without --yes and there is no terminal to ask.
type ConfirmationRequiredError struct {
	Action string
}

func (e *ConfirmationRequiredError) Error() string {
	return "Confirmation required. Re-run with --yes to proceed."
}

// Confirmer asks the user before destructive actions.
type Confirmer struct {
	In  io.Reader
	Out io.Writer

	// Interactive reports whether In is a terminal.
	Interactive bool

	// Yes skips the prompt.
	Yes bool
}

// Confirm asks "Delete <label>? (y/N)". Anything other than y or yes
// declines.
func (c *Confirmer) Confirm(label string) (bool, error) {
	if c.Yes {
		return true, nil
	}
	if !c.Interactive {
		return false, &ConfirmationRequiredError{Action: "delete " + label}
	}

	fmt.Fprintf(c.Out, "Delete %s? (y/N) ", label)
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
