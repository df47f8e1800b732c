package main

import (
	"fmt"
	"os"

	"github.com/MayorChristopher/artificialfarm-sub000/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "academy-configure",
		Short: "Configuration tool for the Artificial Farm Academy chatbot API",
		Long:  "CLI tool for configuring auth providers, CORS, rate limits, and seeding site content",
	}

	rootCmd.AddCommand(commands.NewAuthCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewCorsCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
