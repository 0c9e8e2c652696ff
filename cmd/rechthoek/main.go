package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/plus3/rechthoek/app"
	"github.com/plus3/rechthoek/bench"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/scene"
	"github.com/spf13/cobra"
)

type flags struct {
	configFile string
	logLevel   string
	seed       uint64
	debug      bool
	mute       bool
	duration   time.Duration
	ticks      int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:          "rechthoek",
		Short:        "rotating rectangle and particle demos",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), f.logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&f.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().Uint64Var(&f.seed, "seed", 0, "random seed (0 = time based)")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "open a window and play a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Lookup(args[0])
			if err != nil {
				return err
			}
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return app.Run(sc, cfg, app.Options{Mute: f.mute, Source: f.source()})
		},
	}
	runCmd.Flags().BoolVar(&f.debug, "debug", false, "show the debug overlay")
	runCmd.Flags().BoolVar(&f.mute, "mute", false, "disable sound")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE")
			for _, sc := range scene.List() {
				fmt.Fprintf(w, "%s\t%s\n", sc.Name, sc.Title)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "run a scene headless and print a timing report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Lookup(args[0])
			if err != nil {
				return err
			}
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			report, err := bench.Run(ctx, sc, cfg, bench.Options{Duration: f.duration, MaxTicks: f.ticks})
			if err != nil {
				return err
			}
			return report.Generate(cmd.OutOrStdout())
		},
	}
	benchCmd.Flags().DurationVar(&f.duration, "duration", 10*time.Second, "how long to run")
	benchCmd.Flags().IntVar(&f.ticks, "ticks", 0, "stop after this many ticks (0 = no limit)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, benchCmd, configCmd)
	rootCmd.SetContext(context.Background())
	return rootCmd
}

// load reads the config file, if any, and applies the flags that were
// set on the command line.
func (f *flags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = config.Load(f.configFile); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = f.debug
	}
	if f.mute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *flags) source() string {
	if f.configFile == "" {
		return "defaults"
	}
	return f.configFile
}

func setupLogging(w io.Writer, level string) error {
	var l slog.Level
	switch strings.ToLower(level) {
	case "off", "none":
		app.SetLogger(nil)
		return nil
	default:
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
	}
	app.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
	return nil
}
