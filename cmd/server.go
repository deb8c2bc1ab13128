package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/schmilblick-org/violetear-coordinator/api"
	"github.com/schmilblick-org/violetear-coordinator/api/jsonrpc"
	"github.com/schmilblick-org/violetear-coordinator/cmd/flags"
	"github.com/schmilblick-org/violetear-coordinator/config"
	"github.com/schmilblick-org/violetear-coordinator/database/dbcore"
	"github.com/schmilblick-org/violetear-coordinator/database/profiles"
	"github.com/schmilblick-org/violetear-coordinator/database/tasks"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the coordinator server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadOrDefault(flags.ConfigFile)
		if err != nil {
			log.Fatalln("Failed to load config:", err)
		}
		if flags.PostgresURI != "" {
			cfg.PostgresURI = flags.PostgresURI
		}

		db, err := dbcore.Open(dbcore.Options{
			DSN:          cfg.PostgresURI,
			MaxOpenConns: cfg.MaxOpenConns,
		})
		if err != nil {
			log.Fatalln("Failed to open backing store:", err)
		}
		defer db.Close()

		registry := profiles.New(db)
		store := tasks.New(db)
		store.VerifyOnFetch = cfg.VerifyOnFetch

		service := jsonrpc.NewService(db, registry, store)
		if err := service.Register(); err != nil {
			log.Fatalln("Failed to register RPC methods:", err)
		}

		listen := cfg.Listen()
		if flags.Listen != "" {
			listen = flags.Listen
		}

		r := api.NewRouter(cfg.AllowCORS)
		if err := r.Run(listen); err != nil {
			log.Fatalln("Server exited:", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}
