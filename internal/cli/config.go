package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server [url]",
	Short: "Set the API base URL",
	Long: `Set the API base URL and save it to the config file.

Examples:
  taskdeck config set-server http://localhost:8080
  taskdeck config set-server https://tasks.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetServer,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetServerCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "server_url:      %s\n", cfg.ServerURL)
	fmt.Fprintf(out, "request_timeout: %s\n", cfg.RequestTimeout)
	fmt.Fprintf(out, "default_group:   %s\n", cfg.DefaultGroup)
	fmt.Fprintf(out, "confirm_delete:  %t\n", cfg.ConfirmDelete)
	fmt.Fprintf(out, "serialize_ops:   %t\n", cfg.SerializeOps)
	fmt.Fprintf(out, "log_level:       %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "log_file:        %s\n", cfg.LogFile)
	fmt.Fprintf(out, "log_console:     %t\n", cfg.LogConsole)
	return nil
}

func runConfigSetServer(cmd *cobra.Command, args []string) error {
	raw := strings.TrimRight(strings.TrimSpace(args[0]), "/")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected http(s)://host[:port]", args[0])
	}

	cfg.ServerURL = raw
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Server set to %s\n", raw)
	return nil
}
