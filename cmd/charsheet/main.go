// Command charsheet renders character records into LaTeX character sheets.
package main

import (
	"context"
	"os"
)

func main() {
	cmd := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
