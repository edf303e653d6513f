package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tvshell/internal/bootstrap"
	"tvshell/internal/platform/config"
	"tvshell/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir   string
	ephemeral bool
	engine    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "tvshell",
		Short:         "Remote-driven browser shell for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default ~/.local/share/tvshell)")
	root.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep tiles and preferences in memory only")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newOpenCmd(flags))
	root.AddCommand(newTilesCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	return root
}

// loadApp reads config, installs logging and builds the persistent graph. The
// returned closer releases both.
func loadApp(flags *rootFlags, logToStderr bool) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return nil, nil, err
	}
	if flags.engine != "" {
		cfg.Engine.Kind = flags.engine
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	logCloser, err := logging.Setup(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level, Stderr: logToStderr})
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, bootstrap.Options{Ephemeral: flags.ephemeral})
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return app, func() {
		_ = app.Close()
		_ = logCloser.Close()
	}, nil
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	var openURL string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the shell in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			return bootstrap.RunTUI(cmd.Context(), app, bootstrap.TUIOptions{OpenURL: openURL})
		},
	}
	cmd.Flags().StringVar(&openURL, "open", "", "URL to open once the shell is up")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "rendering engine: memory|chrome (overrides config)")
	return cmd
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the shell headless, driven by open requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer closeApp()
			return bootstrap.Serve(cmd.Context(), app)
		},
	}
	cmd.Flags().StringVar(&flags.engine, "engine", "", "rendering engine: memory|chrome (overrides config)")
	return cmd
}

func newOpenCmd(flags *rootFlags) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Ask a running shell to open a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			out, err := app.RemoteIntent().Open(cmd.Context(), args[0], source)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opening %s (%s)\n", out.URL, out.Source)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "view", "provenance: view|share|user_entered")
	return cmd
}

func newTilesCmd(flags *rootFlags) *cobra.Command {
	tiles := &cobra.Command{Use: "tiles", Short: "Manage home tiles"}

	tiles.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pinned tiles in display order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			list, err := app.TilesCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tiles")
				return nil
			}
			for _, t := range list {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-8s %-24s %s\n", t.ID, t.Kind, t.Title, t.URL)
			}
			return nil
		},
	})

	var title string
	pin := &cobra.Command{
		Use:   "pin <url>",
		Short: "Pin a site to the home grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			t, err := app.TilesCLI.Pin(cmd.Context(), args[0], title)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pinned %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}
	pin.Flags().StringVar(&title, "title", "", "tile title (default: the address without scheme)")

	unpin := &cobra.Command{
		Use:   "unpin <url>",
		Short: "Remove the tile for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			removed, err := app.TilesCLI.Unpin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not pinned")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unpinned")
			return nil
		},
	}

	tiles.AddCommand(pin, unpin)
	return tiles
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Inspect and change preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every preference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			snap, err := app.SettingsCLI.Show(cmd.Context())
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), snap.BlockingEnabled, snap.OnboardingShown, snap.UnpinToastsShown, snap.TilesSeeded)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:       "turbo <on|off>",
		Short:     "Switch tracking protection",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			if err := app.SettingsCLI.SetTurbo(cmd.Context(), args[0] == "on"); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "turbo %s\n", args[0])
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "reset-toast",
		Short: "Show the unpin hint again on the next three overlays",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closeApp()
			if err := app.SettingsCLI.ResetUnpinToast(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unpin hint counter reset")
			return nil
		},
	})
	return settings
}

func printSnapshot(w io.Writer, turbo, onboarding bool, toasts int, seeded bool) {
	_, _ = fmt.Fprintf(w, "turbo mode:          %t\n", turbo)
	_, _ = fmt.Fprintf(w, "onboarding shown:    %t\n", onboarding)
	_, _ = fmt.Fprintf(w, "unpin hints shown:   %d/3\n", toasts)
	_, _ = fmt.Fprintf(w, "bundled tiles added: %t\n", seeded)
}
