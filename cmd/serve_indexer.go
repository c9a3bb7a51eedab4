package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ktan-wolf/Indexer/pkg/cmd/server"
)

// serveIndexerCmd represents the serve indexer command
var serveIndexerCmd = &cobra.Command{
	Use:   "indexer",
	Short: "Serve the ledger indexer and its read API",
	Run:   server.RunServeIndexer(c),
}

func init() {
	serveCmd.AddCommand(serveIndexerCmd)
}
