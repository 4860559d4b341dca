package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/httpgraph/cmd/httpgraph"
	"github.com/arthur-debert/httpgraph/internal/version"
)

func main() {
	rootCmd := httpgraph.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HTTPGRAPH",
		Section: "1",
		Source:  "httpgraph " + version.Version,
		Manual:  "httpgraph manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
