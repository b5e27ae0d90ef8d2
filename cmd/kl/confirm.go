package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether prompts can be answered interactively.
// Tests replace it.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a y/N question on the command's input. With yes set the
// prompt is skipped. Without a terminal and without yes, it refuses rather
// than guessing.
func confirm(cmd *cobra.Command, prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	in := cmd.InOrStdin()
	if in == os.Stdin && !stdinIsTerminal() {
		return false, fmt.Errorf("refusing to %s without confirmation; re-run with --yes", strings.ToLower(strings.TrimSuffix(prompt, "?")))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
