package main

import (
	"fmt"
	"os"

	"github.com/nivecher/meal-expense-tracker-sub003/cmd/mealtrack/cli"
	"github.com/nivecher/meal-expense-tracker-sub003/cmd/mealtrack/cli/server"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(server.NewServeCommand())
	root.AddCommand(server.NewConfigCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
