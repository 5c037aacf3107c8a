package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/gitpkg/cmd/gitpkg"
	"github.com/arthur-debert/gitpkg/pkg/style"
)

func main() {
	rootCmd := gitpkg.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %s", gitpkg.Diagnostic(err))))

		if strings.HasPrefix(err.Error(), "unknown command") {
			fmt.Fprintln(os.Stderr)
			rootCmd.SetOut(os.Stderr)
			_ = rootCmd.Usage()
		}

		os.Exit(1)
	}
}
