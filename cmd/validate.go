/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/SvenDH/go-card-render/card"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file or directory]...",
	Short: "Check card files without rendering them",
	Long: `Parse every card file and report records that fail validation: unknown
variants, malformed costs, bad loyalty values. Exits non-zero when any
file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := 0
		checked := 0
		for _, path := range collectCardFiles(args) {
			checked++
			if _, err := card.LoadCardFile(path); err != nil {
				log.Printf("%v", err)
				failed++
			}
		}
		log.Printf("checked %d cards, %d invalid", checked, failed)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
