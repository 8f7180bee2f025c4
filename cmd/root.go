/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "go-card-render",
	Short: "Render trading card definitions to HTML",
	Long: `go-card-render reads card definitions written as YAML records, validates
their costs and rules text, and renders them as HTML card documents.

Card files use bracketed symbol notation in costs and rules text, e.g.
"{2}{U}{U}" or "{T}: Add {G}.".`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
