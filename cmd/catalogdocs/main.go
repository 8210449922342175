package main

import (
	"os"

	"github.com/grovetools/catalogdocs/cli"
	"github.com/grovetools/catalogdocs/cmd"
	"github.com/grovetools/catalogdocs/errors"
	"github.com/grovetools/catalogdocs/theme"
)

func main() {
	theme.ConfigureColor(os.Stderr)

	rootCmd := cmd.NewRootCmd()
	executed, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	if _, ok := errors.As(err); ok {
		verbose, _ := executed.Flags().GetBool("verbose")
		cli.NewErrorHandler(os.Stderr, verbose).Handle(err)
	} else {
		cli.PrintError(executed, err)
	}
	os.Exit(1)
}
