/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SvenDH/go-card-render/card"
	"github.com/SvenDH/go-card-render/render"
)

var renderOut string

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [file or directory]...",
	Short: "Render card files to HTML documents",
	Long: `Render card files to HTML documents, one document per card, named after
the sanitized card name. Directories are walked recursively for .yaml and
.yml files. Files that fail to parse are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := render.New()
		rendered := 0
		for _, path := range collectCardFiles(args) {
			c, err := card.LoadCardFile(path)
			if err != nil {
				log.Printf("%v", err)
				continue
			}
			out, err := r.RenderToFile(c, renderOut)
			if err != nil {
				log.Printf("%s: %v", path, err)
				continue
			}
			log.Printf("%s -> %s", path, out)
			rendered++
		}
		log.Printf("rendered %d cards to %s", rendered, renderOut)
	},
}

func isCardFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func collectCardFiles(args []string) []string {
	var files []string
	for _, arg := range args {
		err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isCardFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			log.Printf("%s: %v", arg, err)
		}
	}
	return files
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "./output", "directory for rendered documents")
}
