// Package main implements tuiwin, a floating window you can drag and resize
// from a terminal, over SSH or in a browser.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/charmbracelet/fang"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	cpuProfile string
	themeName  string
	recordPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuiwin",
		Short: "A draggable, resizable window for your terminal",
		Long: `tuiwin - a floating window manager

Drag the title bar to move the window, drag any edge or corner to resize
it, and use the traffic lights to close, minimize or maximize. The same
window can be served over SSH or to a browser with touch support.`,
		Example: `  # Run in this terminal
  tuiwin

  # Run with debug logging
  tuiwin --debug

  # Serve over SSH
  tuiwin ssh --addr localhost:2222

  # Serve to a browser
  tuiwin web --addr 0.0.0.0:7681 --tls

  # Record a session, then replay it
  tuiwin --record session.tape
  tuiwin replay session.tape --format yaml`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Theme name (overrides the config file)")
	rootCmd.Flags().StringVar(&recordPath, "record", "", "Record mouse and window actions to a gesture script")

	var sshAddr, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve tuiwin over SSH",
		Long: `Serve tuiwin over SSH

Every connection gets its own window sized to the client terminal. A host
key is generated on first start if none exists.`,
		Example: `  # Start on the configured address
  tuiwin ssh

  # Listen on all interfaces
  tuiwin ssh --addr 0.0.0.0:2222`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(sshAddr, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshAddr, "addr", "", "Listen address (default from config)")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (default from config)")

	var webAddr string
	var webTLS bool
	var webMaxConnections int

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve tuiwin to a browser",
		Long: `Serve tuiwin to a browser

The page draws a panel driven by the same geometry manager as the terminal
version, using real mouse and touch events. Each tab gets its own window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebServer(webAddr, webTLS, webMaxConnections)
		},
	}
	webCmd.Flags().StringVar(&webAddr, "addr", "", "Listen address (default from config)")
	webCmd.Flags().BoolVar(&webTLS, "tls", false, "Serve HTTPS with a self-signed certificate")
	webCmd.Flags().IntVar(&webMaxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")

	var replayFormat, replayViewport string
	var replayRealtime bool

	replayCmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a gesture script",
		Long: `Replay a gesture script against a headless window

Scripts are line oriented: Press, Drag, Resize, Move, Release, Touch,
TouchMove, TouchEnd, SetPosition, SetSize, Maximize, Sleep and Expect.
Sessions recorded with tuiwin --record replay to the same geometry.
The window state after every command is printed. A failed Expect stops the
replay with a non-zero exit status.`,
		Example: `  tuiwin replay drag.tape
  tuiwin replay drag.tape --format json --viewport 1920x1080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args[0], replayOptions{
				Format:   replayFormat,
				Viewport: replayViewport,
				Realtime: replayRealtime,
				Out:      cmd.OutOrStdout(),
			})
		},
	}
	replayCmd.Flags().StringVar(&replayFormat, "format", "text", "Output format: text, json or yaml")
	replayCmd.Flags().StringVar(&replayViewport, "viewport", "", "Viewport as WxH (default: this terminal)")
	replayCmd.Flags().BoolVar(&replayRealtime, "realtime", false, "Honor Sleep commands")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the geometry engine to MCP clients on stdio",
		Long: `Serve the geometry engine to MCP clients on stdio

Exposes replay_gestures, which runs a gesture script against a headless
window, and compute_resize, which applies one handle drag to a rectangle.`,
		Example: `  claude mcp add tuiwin -- tuiwin mcp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCPServer()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuiwin configuration",
		Long:  `Manage tuiwin configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuiwin configuration file in your default editor

A running tuiwin picks up the saved changes; new size limits apply from
the next resize.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configShowCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "List keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	rootCmd.AddCommand(sshCmd, webCmd, replayCmd, mcpCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func showConfig() error {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// Writes the defaults when the file is missing
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Printf("Warning: current config is invalid: %v\n", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: tuiwin config edit")
	return nil
}

// listKeybindings prints all configured keybindings in a table
func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	registry := config.NewKeybindRegistry(userConfig)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	rows := [][]string{}
	for _, kb := range config.GetKeybindings(registry) {
		rows = append(rows, []string{kb.Key, kb.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("tuiwin Keybindings"))
	fmt.Println(t.Render())

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Mouse: drag the title bar to move, drag an edge or corner to resize, double-click the title to maximize.")
	fmt.Println(note)
	fmt.Println()
	return nil
}
