package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// buildEnv is the default environment, set at link time with
// -ldflags "-X github.com/theirongolddev/finboard/cmd.buildEnv=development".
var buildEnv = "production"

var (
	flagEnv     string
	flagBaseURL string
	flagQuiet   bool
	flagVerbose bool
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:           "finboard",
	Short:         "Personal finance dashboard CLI",
	Long:          "Track transactions, budgets, investments, goals, subscriptions and udhaari from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "Environment: production or development (default from build)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "api-url", "", "Gateway base URL, overriding config")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices and logs")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests to stderr")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file to load")
}
