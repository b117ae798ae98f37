package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"
	"github.com/taoziyu97/sra-tools/cmd/fqconcat/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()

	err := doc.GenMan(rootCmd, commands.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
