// Package main provides the cafedesk binary entry point.
// Cafedesk is a terminal administrative console for a café/employee
// resource service: list, create, edit, and delete records, with a
// client-side query cache keeping the two collections consistent.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cafedesk/cafedesk/commands"
	"github.com/cafedesk/cafedesk/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "cafedesk"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		apiURL     string
		logLevel   string
	)

	app := &commands.App{}

	cmd := &cobra.Command{
		Use:   "cafedesk",
		Short: "Administrative console for cafes and employees",
		Long: `Cafedesk manages the café and employee records of a remote
resource service from the terminal.

It provides:
- Listing and filtering of cafés (by location) and employees (by café)
- Create, edit, and delete flows with client-side validation
- Logo upload, including for cafés that are not persisted yet
- A shared query cache that stays consistent across both collections`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, apiURL, logLevel)
			if err != nil {
				return err
			}

			logger := commands.NewLogger(cfg.Log.Level)
			slog.SetDefault(logger)

			*app = *commands.NewApp(cfg, logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Resource service base URL")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(commands.NewCafesCmd(app))
	cmd.AddCommand(commands.NewEmployeesCmd(app))

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
	versionCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
	cmd.AddCommand(versionCmd)

	return cmd
}

// loadConfig resolves configuration: an explicit file wins over the
// layered loader, and command-line flags override both.
func loadConfig(configPath, apiURL, logLevel string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.NewLoader(nil).Load()
	}
	if err != nil {
		return nil, err
	}

	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
