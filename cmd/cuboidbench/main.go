package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gpupipe/cuboidbench/bench"
	"github.com/gpupipe/cuboidbench/cuboid"
	"github.com/gpupipe/cuboidbench/device"
	"github.com/gpupipe/cuboidbench/logger"
	"github.com/gpupipe/cuboidbench/runner"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const defaultCount = 1024 * 1024 * 75

func main() {
	var (
		count     int
		sample    int
		runs      int
		seed      int64
		class     string
		verbosity string
		rootLog   *zap.Logger
	)

	app := &cli.App{
		Name:  "cuboidbench",
		Usage: "Compute cuboid surface areas on an accelerator and compare against a sequential baseline",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "count",
				Value:       defaultCount,
				Usage:       "number of cuboids",
				Destination: &count,
			},
			&cli.IntFlag{
				Name:        "sample",
				Value:       100,
				Usage:       "result rows to print for visual cross-check",
				Destination: &sample,
			},
			&cli.IntFlag{
				Name:        "runs",
				Value:       1,
				Usage:       "accelerator passes to time (mean and sigma reported when >1)",
				Destination: &runs,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Value:       1,
				Usage:       "input generator seed",
				Destination: &seed,
			},
			&cli.StringFlag{
				Name:        "device",
				Value:       "gpu",
				Usage:       "device class to select: gpu, cpu or any",
				Destination: &class,
			},
			&cli.StringFlag{
				Name:        "verbosity",
				Value:       "info",
				Usage:       "log verbosity",
				Destination: &verbosity,
			},
		},
		Before: func(c *cli.Context) error {
			zapLogger, err := logger.New(verbosity)
			if err != nil {
				return err
			}
			rootLog = zapLogger.Named("cuboidbench")
			return nil
		},
		Action: func(c *cli.Context) error {
			filter, err := device.ParseClass(class)
			if err != nil {
				return err
			}
			return run(rootLog, count, sample, runs, seed, filter)
		},
	}

	if err := app.Run(os.Args); err != nil {
		var buildErr *runner.BuildError
		if errors.As(err, &buildErr) {
			// Surface the compiler diagnostics verbatim before aborting.
			fmt.Fprintln(os.Stderr, buildErr.Log)
		}
		if rootLog != nil {
			rootLog.Error("run failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(log *zap.Logger, count, sample, runs int, seed int64, filter device.Class) error {
	if runs < 1 {
		runs = 1
	}

	log.Info("generating inputs", zap.Int("count", count), zap.Int64("seed", seed))
	in := cuboid.RandomInputs(count, seed)

	var (
		accel   *cuboid.Result
		elapsed = make([]float64, 0, runs)
	)
	for pass := 0; pass < runs; pass++ {
		// Each pass owns a fresh session; the session closes the device.
		dev, err := device.Select(filter)
		if err != nil {
			return err
		}
		if pass == 0 {
			log.Info("selected device",
				zap.String("platform", dev.Platform().Name),
				zap.String("class", dev.Class().String()),
				zap.Int("computeUnits", dev.ComputeUnits()))
		}

		accel, err = cuboid.Run(dev, in, log)
		if err != nil {
			return err
		}
		elapsed = append(elapsed, accel.Elapsed())
	}

	var seq []int32
	seqRec, _ := bench.Measure(func() error {
		seq = cuboid.SurfaceAreas(in)
		return nil
	})

	cuboid.WriteReport(os.Stdout, in, accel.Areas, seq,
		elapsed[len(elapsed)-1], seqRec.Seconds(), sample)

	if runs > 1 {
		mean, sigma := bench.Summary(elapsed)
		log.Info("accelerator timing over repeated passes",
			zap.Int("runs", runs),
			zap.Float64("meanSeconds", mean),
			zap.Float64("sigmaSeconds", sigma))
	}

	if mismatches := cuboid.Compare(accel.Areas, seq); mismatches > 0 {
		return fmt.Errorf("accelerator and sequential results disagree at %d of %d indices",
			mismatches, count)
	}
	log.Info("accelerator and sequential results agree", zap.Int("count", count))
	return nil
}
