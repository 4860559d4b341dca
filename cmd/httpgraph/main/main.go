package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/httpgraph/cmd/httpgraph"
	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/ui/styles"
)

func main() {
	rootCmd := httpgraph.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))

		// Usage mistakes get the help of the root command
		if errors.IsErrorCode(err, errors.ErrInvalidInput) {
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Help()
		}
		os.Exit(1)
	}
}
