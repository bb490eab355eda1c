package cmd

import (
	"fmt"
	"io"
	"procdeck/internal/app"
	"procdeck/internal/process"
	"procdeck/pkg/logging"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the scripts procdeck would run",
		Long: `Prints every script found in the project manifest with its type,
whether it starts automatically and the command that runs it.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := settings(cmd.Flags())
	if err != nil {
		return err
	}
	level := logging.LevelWarn
	if s.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	cfg := app.NewConfig(s)
	if err := app.LoadConfig(cfg); err != nil {
		return err
	}
	scripts, err := cfg.ProcdeckConfig.ProcessScripts()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Manifest: %s\n", cfg.ProcdeckConfig.ManifestPath)
	renderScripts(cmd.OutOrStdout(), scripts)
	return nil
}

// renderScripts writes scripts as a table, in the order the dashboard
// lists them.
func renderScripts(w io.Writer, scripts []process.Script) {
	store := process.NewStore("", scripts...)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Type", "Autostart", "Command"})
	for _, p := range store.Sorted() {
		autostart := "no"
		if p.Autostart() {
			autostart = "yes"
		}
		t.AppendRow(table.Row{p.Name(), p.Type(), autostart, p.Command()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Command", WidthMax: 60},
	})
	t.Render()
}
