// Package cli provides the command-line interface for zenflow.
package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/config"
	"github.com/sadopc/zenflow/internal/tui"
	"github.com/spf13/cobra"
)

// openContainerFunc and runTUIFunc are function variables so tests can
// substitute an in-memory container and skip the terminal UI.
var (
	openContainerFunc = app.Open
	runTUIFunc        = runTUI
)

type options struct {
	configPath string
	dbPath     string
	logLevel   string
}

// resolve loads the config file and applies command-line overrides on top.
func (o *options) resolve() (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

// open resolves the config and opens a container. The caller closes it.
func (o *options) open() (*app.Container, config.Config, error) {
	cfg, err := o.resolve()
	if err != nil {
		return nil, cfg, err
	}
	c, err := openContainerFunc(cfg)
	if err != nil {
		return nil, cfg, err
	}
	return c, cfg, nil
}

// NewRootCommand creates the root command. With no subcommand it starts the
// dashboard.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "zenflow",
		Short: "Terminal productivity dashboard",
		Long: `zenflow keeps a task list, a calendar of events, a work/break
interval timer and a rolling seven day activity summary in one terminal
dashboard. Run without a subcommand to open it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, cfg, err := opts.open()
			if err != nil {
				return err
			}
			defer c.Close()
			return runTUIFunc(c, cfg.Refresh)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/zenflow/config.toml)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file, overrides the config")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newStatsCommand(opts),
		newWatchCommand(opts),
		newExportCommand(opts),
		newClearCommand(opts),
	)
	return root
}

func runTUI(c *app.Container, refresh time.Duration) error {
	p := tea.NewProgram(tui.NewApp(c, refresh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
