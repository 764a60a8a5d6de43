package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/framecore/internal/config"
)

// globals holds the persistent flags and what they resolve to.
type globals struct {
	configPath string
	logFile    string
	logLevel   string
	verbose    bool

	cfg     *config.Config
	logger  *log.Logger
	closeFn func() error
}

func newRootCmd(g *globals) *cobra.Command {
	root := &cobra.Command{
		Use:          "framecore",
		Short:        "Incremental terminal frame renderer",
		Long:         `framecore renders a retained element tree to the terminal, emitting only the cells that changed since the previous frame.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return g.close()
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("framecore %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "config file (.toml, .yaml); default $"+config.EnvConfigPath+" or the user config dir")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file (overrides log.file)")
	flags.StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newDemoCmd(g))
	root.AddCommand(newBenchCmd(g))
	root.AddCommand(newConfigCmd(g))

	return root
}

// execute runs cmd and releases the log file whether or not it succeeds;
// cobra skips PersistentPostRunE when RunE fails.
func (g *globals) execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if cerr := g.close(); err == nil {
		err = cerr
	}
	return err
}

// close closes the log file, if one is open. It is safe to call twice.
func (g *globals) close() error {
	if g.closeFn == nil {
		return nil
	}
	closeFn := g.closeFn
	g.closeFn = nil
	return closeFn()
}

// setup loads the configuration and builds the logger.
func (g *globals) setup(stderr io.Writer) error {
	if g.configPath == "" {
		g.configPath = config.DefaultPath()
	}
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	g.cfg = cfg

	levelName := cfg.Log.Level
	if g.logLevel != "" {
		levelName = g.logLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if g.verbose {
		level = log.DebugLevel
	}

	file := cfg.Log.File
	if g.logFile != "" {
		file = g.logFile
	}
	w, closeFn, err := openLog(file, stderr)
	if err != nil {
		return err
	}
	g.closeFn = closeFn
	g.logger = newLogger(w, level)
	return nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLog opens the log destination. "-" means stderr; an empty name
// discards logs.
func openLog(name string, stderr io.Writer) (io.Writer, func() error, error) {
	switch strings.TrimSpace(name) {
	case "":
		return io.Discard, nil, nil
	case "-":
		return stderr, nil, nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
