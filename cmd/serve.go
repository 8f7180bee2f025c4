/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/SvenDH/go-card-render/server"
)

var (
	serveAddr string
	serveDir  string
	serveDb   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the card catalog with live preview",
	Long: `Serve the card catalog over HTTP. Cards under the watched directory are
loaded into the catalog database and re-rendered on change; connected
preview clients are notified over a websocket so open cards refresh.`,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := server.OpenRepository(serveDb)
		if err != nil {
			log.Fatal(err)
		}
		defer repo.Close()

		broker := server.NewMemoryBroker()
		defer broker.Close()
		hub := server.NewHub(broker)
		catalog := server.NewCatalog(repo, hub)

		if serveDir != "" {
			if err := catalog.LoadDir(serveDir); err != nil {
				log.Fatal(err)
			}
			go func() {
				if err := catalog.Watch(context.Background(), serveDir); err != nil {
					log.Printf("watch stopped: %v", err)
				}
			}()
		}

		server.NewRouter(serveAddr, repo, catalog, hub).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", "./cards", "directory of card files to watch")
	serveCmd.Flags().StringVar(&serveDb, "db", "./catalog.db", "catalog database path")
}
