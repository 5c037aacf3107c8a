package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/gitpkg/cmd/gitpkg"
	"github.com/arthur-debert/gitpkg/internal/version"
)

func main() {
	rootCmd := gitpkg.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "GITPKG",
		Section: "1",
		Source:  "gitpkg " + version.Version,
		Manual:  "gitpkg manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
