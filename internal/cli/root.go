package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/taskdeck/internal/config"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/notify"
	"github.com/existflow/taskdeck/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	serverURL  string
	configPath string

	// cfg is loaded once per invocation by the root pre-run hook
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "TaskDeck - tasks, groups and categories from your terminal",
	Long: `TaskDeck is a terminal client for a task API. Tasks live in groups
and can carry a colored category.

Run 'taskdeck' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Logging flags persist, like every other setting changed from the command line
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if configChanged {
			if err := saveConfig(cfg); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("TaskDeck started", logger.F("command", cmd.Name()), logger.F("server", apiURL()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		toasts := notify.NewQueue(tui.ToastTTL, 3)
		st := buildStore(toasts)

		logger.Info("Launching TUI")
		m := tui.NewModel(st, toasts, tui.Options{
			DefaultGroup:  cfg.DefaultGroup,
			ConfirmDelete: cfg.ConfirmDelete,
		})
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("TaskDeck exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// apiURL is the --server override if given, otherwise the configured URL.
// The override is never written back to the config file.
func apiURL() string {
	if serverURL != "" {
		return serverURL
	}
	return cfg.ServerURL
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func saveConfig(c *config.Config) error {
	if configPath != "" {
		return c.SaveTo(configPath)
	}
	return c.Save()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL for this invocation")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.taskdeck/config.yaml)")

	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(configCmd)
}
