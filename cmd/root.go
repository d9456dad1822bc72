package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/product-catalog/internal/app"
	"github.com/nguyentranbao-ct/product-catalog/internal/server"
	log "github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
)

var rootCmd = &cobra.Command{
	Use:           "product-catalog",
	Short:         "Product catalog web application",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(server.StartServer).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
