package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"convoy-pipeline/internal/config"
	"convoy-pipeline/internal/logger"
	"convoy-pipeline/internal/metrics"
	"convoy-pipeline/internal/pipeline"
)

type rootOptions struct {
	cfgPath string
	input   string
	force   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "convoy [input]",
		Short:         "Validate, score and route a vehicle fleet",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "fleet file (.xlsx, .csv or .s3db)")
	rootCmd.PersistentFlags().BoolVarP(&opts.force, "force", "f", false, "ignore outputs already on disk")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run [input]",
		Short: "Run the pipeline for a fleet file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	})
	rootCmd.AddCommand(newStageCmd(opts))
	return rootCmd
}

func run(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log := logger.New("convoy")

	input, err := resolveInput(cmd, args, opts.input)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	var sink metrics.Sink = metrics.NopSink{}
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled() {
		reg = prometheus.NewRegistry()
		ps, err := metrics.NewPromSink(reg)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		sink = ps
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := pipeline.Run(ctx, input, pipeline.Options{
		Config:  cfg,
		Logger:  log,
		Metrics: sink,
		Out:     cmd.OutOrStdout(),
		Force:   opts.force,
	})
	if reg != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.Errorf("%v", err)
		}
	}
	if runErr != nil {
		log.Errorf("run %s failed: %v", summary.RunID, runErr)
		return runErr
	}
	log.Infof("run %s finished with status %s", summary.RunID, summary.Status)
	return nil
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveInput takes the input from the positional argument, the --input flag
// or, failing both, a prompt on stdin.
func resolveInput(cmd *cobra.Command, args []string, flagInput string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if flagInput != "" {
		return flagInput, nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Input file name")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input file name: %w", err)
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return "", errors.New("no input file given")
	}
	return name, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
