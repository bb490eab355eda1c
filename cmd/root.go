package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"procdeck/internal/app"
	"procdeck/internal/config"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "procdeck",
	Short: "Run and watch your project's scripts from one terminal",
	Long: `procdeck reads the scripts of a project from procdeck.yaml or package.json
and runs them side by side in a terminal dashboard.

Services and other autostart scripts are started right away. Each script
gets its own scrollable output, status, uptime and resource usage. Scripts
can be restarted, stopped and filtered from the keyboard; output can be
selected and copied with the mouse.

Configuration:
  procdeck looks for procdeck.yaml or package.json in the current directory
  and its parents. User defaults are read from ~/.config/procdeck/config.yaml.
  Every flag can also be set through a PROCDECK_ environment variable,
  e.g. PROCDECK_SHELL=bash.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a broken manifest)
	SilenceUsage: true,
	RunE:         runRoot,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "procdeck version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra prints the error, we just exit non-zero
		stop()
		os.Exit(1)
	}
}

// settings reads the runtime settings bound to flags and environment.
func settings(flags *pflag.FlagSet) (config.Settings, error) {
	v, err := config.BindSettings(flags)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	return config.SettingsFrom(v), nil
}

// runRoot opens the dashboard
func runRoot(cmd *cobra.Command, args []string) error {
	s, err := settings(cmd.Flags())
	if err != nil {
		return err
	}

	application, err := app.NewApplication(app.NewConfig(s))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Persistent so that `procdeck list` reads the same manifest
	rootCmd.PersistentFlags().String("config", "", "Path to procdeck.yaml or package.json (default: search upward from the current directory)")
	rootCmd.PersistentFlags().String("shell", "", "Shell used to run scripts (default: sh)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.Flags().Bool("no-mouse", false, "Disable mouse support in the dashboard")
}
