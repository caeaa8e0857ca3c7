package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wilbur182/campusdesk/internal/app"
	"github.com/wilbur182/campusdesk/internal/assistant"
	"github.com/wilbur182/campusdesk/internal/chatlog"
	"github.com/wilbur182/campusdesk/internal/config"
	"github.com/wilbur182/campusdesk/internal/history"
	"github.com/wilbur182/campusdesk/internal/store"
	"github.com/wilbur182/campusdesk/internal/version"
	"github.com/wilbur182/campusdesk/internal/voice"
)

// Version is set at build time via ldflags
var Version = ""

const historyTimeFmt = "Jan 2, 2006 3:04 PM"

var errNoTerminal = errors.New("campusdesk needs an interactive terminal")

type options struct {
	configPath string
	debug      bool
	apiURL     string
	offline    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "campusdesk",
		Short: "GCET college assistant for the terminal",
		Long: `campusdesk answers questions about timetables, exam schedules and study
materials. Drag the bottom sheet handle, or press ctrl+e, to show or hide
the tools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.Flags().StringVar(&opts.apiURL, "api", "", "assistant backend base URL")
	root.Flags().BoolVar(&opts.offline, "offline", false, "answer from demo data without contacting the backend")

	root.AddCommand(newHistoryCmd(opts), newConfigCmd(opts), newVersionCmd(opts))
	return root
}

func loadConfig(opts *options) (*config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, "", err
	}
	if opts.debug {
		cfg.Log.Debug = true
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	return cfg, path, nil
}

// newLogger writes JSON logs to the configured file; the TUI owns stdout.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.Log.Path}
	zc.ErrorOutputPaths = []string{cfg.Log.Path}
	if cfg.Log.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func runTUI(ctx context.Context, opts *options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	cfg, path, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	kv, err := store.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := config.Watch(ctx, path, log.Named("config"))
	if err != nil {
		// no config directory yet; run without reloads
		log.Debug("config watch disabled", zap.String("path", path), zap.Error(err))
		updates = nil
	}

	deps := app.Deps{
		Config:        cfg,
		Store:         kv,
		Recognizer:    &voice.CommandRecognizer{Command: cfg.Voice.Command, Lang: cfg.Voice.Lang},
		ConfigUpdates: updates,
		Logger:        log,
	}
	if !opts.offline {
		client := assistant.New(cfg.API.BaseURL, cfg.API.Timeout)
		log.Debug("assistant backend", zap.String("url", client.BaseURL()))
		deps.Assistant = client
	} else {
		log.Debug("assistant backend disabled, answering offline")
	}

	log.Info("starting", zap.String("version", version.Effective(Version)), zap.String("store", kv.Path()))
	m := app.New(deps)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past chat sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			kv, err := store.OpenSQLite(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer kv.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			l, err := chatlog.Load(ctx, kv, zap.NewNop())
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), history.Entries(history.Group(l.Messages(), cfg.History.SessionGap)))
		},
	}
}

func printHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No chat history yet")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%-11s %s  (%d messages)\n  %s\n",
			e.Label, e.StartTime.Local().Format(historyTimeFmt), e.Messages, e.Preview); err != nil {
			return err
		}
	}
	return nil
}

func newConfigCmd(opts *options) *cobra.Command {
	var initFile bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the config file location, or write the defaults there",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			out := cmd.OutOrStdout()
			if !initFile {
				_, err := fmt.Fprintln(out, path)
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.SaveTo(config.Default(), path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, err := fmt.Fprintf(out, "wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default config if none exists")
	return cmd
}

func newVersionCmd(opts *options) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := version.Effective(Version)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "campusdesk version %s\n", current)
			if !check {
				return nil
			}

			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			cache := version.CachePath(filepath.Dir(cfg.Storage.Path))
			res := version.CachedCheck(cache, current, time.Now())
			switch {
			case res.Error != nil:
				return fmt.Errorf("check for updates: %w", res.Error)
			case res.HasUpdate:
				fmt.Fprintf(out, "update available: %s %s\n", res.LatestVersion, res.UpdateURL)
			default:
				fmt.Fprintln(out, "up to date")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
