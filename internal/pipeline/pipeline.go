package pipeline

import (
	"context"
	"fmt"
	"io"

	"convoy-pipeline/internal/config"
	"convoy-pipeline/internal/logger"
	"convoy-pipeline/internal/metrics"
	"convoy-pipeline/internal/model"
	"convoy-pipeline/internal/store"
	"convoy-pipeline/pkg/utils"
)

// Options carries the collaborators of a run
type Options struct {
	Config  *config.Config
	Logger  logger.Logger
	Metrics metrics.Sink
	Out     io.Writer // console report lines
	// Force ignores outputs already on disk when detecting the stage.
	Force bool
}

// Inspect resolves the paths of an input and the stage it is at
func Inspect(input string, cfg *config.Config, force bool) (utils.OutputPaths, Stage) {
	paths := utils.NewOutputManager(cfg.Source.CheckedMarker).Resolve(input)
	exists := utils.FileExists
	if force {
		exists = nil
	}
	return paths, DetectStage(paths, exists)
}

// ------------------- Pipeline Runner -------------------
func Run(ctx context.Context, input string, opts Options) (model.RunSummary, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	paths, stage := Inspect(input, cfg, opts.Force)
	plan := PlanFor(stage)
	tracker := NewTracker(input, stage, log, opts.Metrics)
	log = tracker.Logger()
	log.Infof("input %s detected at stage %s", input, stage)

	if plan.Empty() {
		log.Infof("all outputs already exist, nothing to do")
		return tracker.Finish(model.StatusNoop, nil), nil
	}

	if err := execute(ctx, cfg, paths, plan, tracker, out); err != nil {
		return tracker.Finish(model.StatusFailed, err), err
	}
	summary := tracker.Finish(model.StatusCompleted, nil)
	log.Infof("completed in %v", summary.Duration)
	return summary, nil
}

// execute runs the steps of plan against one database connection, which is
// closed before the outcome is returned.
func execute(ctx context.Context, cfg *config.Config, paths utils.OutputPaths, plan Plan, tracker *Tracker, out io.Writer) (err error) {
	log := tracker.Logger()
	db, err := store.Open(paths.Store)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorf("close database %s: %v", paths.Store, cerr)
			if err == nil {
				err = fmt.Errorf("close database: %w", cerr)
			}
		}
	}()

	report := func(res model.SinkResult) {
		tracker.AddResult(res)
		fmt.Fprintln(out, res.Message())
		if res.Sink == model.SinkXML {
			fmt.Fprintln(out, string(res.Document))
		}
	}

	exporter := NewExportManager(paths, db, cfg.Source.Table)

	var raw model.RawTable
	err = tracker.Step(StepRead, func() error {
		var rerr error
		raw, rerr = ReadSource(ctx, paths.Input, SourceOptions{Sheet: cfg.Source.Sheet, Table: cfg.Source.Table}, db)
		return rerr
	})
	if err != nil {
		return err
	}

	if plan.WriteRawCSV {
		err = tracker.Step(StepWriteRawCSV, func() error {
			res, werr := exporter.WriteRawCSV(raw)
			if werr == nil {
				report(res)
			}
			return werr
		})
		if err != nil {
			return err
		}
	}

	var fleet model.Fleet
	var repairs int
	err = tracker.Step(StepValidate, func() error {
		var verr error
		fleet, repairs, verr = ValidateTable(raw)
		return verr
	})
	if err != nil {
		return err
	}
	tracker.Vehicles(len(fleet))
	if plan.Validate {
		tracker.CellsCorrected(repairs)
	} else if repairs > 0 {
		log.Warnf("%d cells repaired in a source already marked as validated", repairs)
	}

	if plan.WriteCheckedCSV {
		err = tracker.Step(StepWriteCheckedCSV, func() error {
			res, werr := exporter.WriteCheckedCSV(fleet, repairs)
			if werr == nil {
				report(res)
			}
			return werr
		})
		if err != nil {
			return err
		}
	}

	scored := NewScorer(cfg.Scoring.RouteLength).ScoreFleet(fleet)
	sinks := trackedSinks{tracker: tracker, next: exporter}
	return Route(ctx, scored, cfg.Scoring.Threshold, plan.Targets, sinks, report)
}
