// Command guidectl is the operator CLI: it seeds the admin account and
// drives the guide pipeline without going through HTTP.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gameguide-backend/pkg/container"
	"gameguide-backend/pkg/logger"
)

// newContainer is swapped in tests for one backed by miniredis.
var newContainer = container.NewContainer

var rootCmd = &cobra.Command{
	Use:          "guidectl",
	Short:        "Operate the game guide backend",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "warn"))
	},
}

func init() {
	adminInitCmd.Flags().StringVar(&initUsername, "username", "", "admin username")
	adminInitCmd.Flags().StringVar(&initPassword, "password", "", "admin password")
	adminInitCmd.Flags().StringVar(&initAdminPath, "admin-path", "", "secret admin path segment")
	_ = adminInitCmd.MarkFlagRequired("username")
	_ = adminInitCmd.MarkFlagRequired("password")
	_ = adminInitCmd.MarkFlagRequired("admin-path")
	adminCmd.AddCommand(adminInitCmd)

	generateCmd.Flags().BoolVar(&forceRegenerate, "force", false, "skip the cache and generate a new guide")

	rootCmd.AddCommand(adminCmd, hashPasswordCmd, generateCmd, getCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
