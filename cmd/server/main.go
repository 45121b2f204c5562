package main

import (
	"os"

	"github.com/arthurcerqueirm/gym-app/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// @title Gym App API
// @version 1.0
// @description Personal workout tracker: templates, weekly schedule, daily workouts, streaks and body metrics.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	v := config.NewViper()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:          "gym-app",
		Short:        "Gym App backend service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), v)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().String("log-level", v.GetString("log.level"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("database-driver", v.GetString("database.driver"), "Storage backend (mongo, memory)")
	rootCmd.PersistentFlags().String("database-uri", v.GetString("database.uri"), "MongoDB connection URI")
	rootCmd.PersistentFlags().String("address", v.GetString("server.address"), "HTTP listen address")

	bindFlag(v, rootCmd, "log.level", "log-level")
	bindFlag(v, rootCmd, "database.driver", "database-driver")
	bindFlag(v, rootCmd, "database.uri", "database-uri")
	bindFlag(v, rootCmd, "server.address", "address")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer(cmd.Context(), v)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the collections and indexes the API needs",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), v)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}
