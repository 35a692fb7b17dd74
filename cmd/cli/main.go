package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
	zone string
	date string
)

var rootCmd = &cobra.Command{
	Use:   "scrim-cli",
	Short: "A CLI to interact with the scrim-scheduler server",
	Long: `A command-line interface for reading player and team availability
from a running scrim-scheduler server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&zone, "tz", "", "IANA time zone to render grids in")
	rootCmd.PersistentFlags().StringVar(&date, "date", "", "Any date in the week to render, as YYYY-MM-DD")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
