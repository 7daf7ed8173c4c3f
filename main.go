// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsuru/sort-benchmark/internal/bench"
	"github.com/tsuru/sort-benchmark/internal/config"
	"github.com/tsuru/sort-benchmark/internal/generator"
	"github.com/tsuru/sort-benchmark/internal/logger"
	"github.com/tsuru/sort-benchmark/internal/manager"
	"github.com/tsuru/sort-benchmark/internal/repository"
	"github.com/tsuru/sort-benchmark/internal/selftest"
	"github.com/tsuru/sort-benchmark/internal/sorting"
	"github.com/tsuru/sort-benchmark/internal/trace"
	"github.com/tsuru/sort-benchmark/server"
)

const cliRunID = "cli"

type configOpts struct {
	outputDir    string
	serverAddr   string
	skipSelfTest bool
	skipRun      bool
}

func (o *configOpts) bindFlags(fs *flag.FlagSet, spec config.Specification) {
	fs.StringVar(&o.outputDir, "output-dir", spec.OutputDir, "Directory receiving one file per result series.")
	fs.StringVar(&o.serverAddr, "serve", spec.ServerAddr, "TCP address for the results API. Empty disables serving.")
	fs.BoolVar(&o.skipSelfTest, "skip-self-test", false, "Do not check the algorithms against the reference sort before benchmarking.")
	fs.BoolVar(&o.skipRun, "skip-run", false, "Do not run the configured sweep; only serve runs submitted through the API.")
}

func main() {
	spec, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts configOpts
	opts.bindFlags(flag.CommandLine, spec)
	flag.Parse()

	setupLog := logger.NewEmitter("sort-benchmark", spec.LogLevel, os.Stderr)

	shutdownTrace, err := trace.InitTrace(spec.TraceEndpoint)
	if err != nil {
		setupLog.Error("unable to start tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTrace(context.Background())

	if !opts.skipSelfTest {
		input := generator.New(spec.Seed).SelfTest(spec.SelfTestSize)
		if err := selftest.Run(input, sorting.All[int](), setupLog); err != nil {
			setupLog.Error("self-test failed", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := repository.NewResultRepository(logger.NewEmitter("sort-benchmark-repository", spec.LogLevel, os.Stderr))
	mgr := manager.NewRunManager(repo, logger.NewEmitter("sort-benchmark-manager", spec.LogLevel, os.Stderr))
	mgr.Start()
	defer mgr.Stop()

	if !opts.skipRun {
		if err := runOnce(ctx, mgr, repo, spec.Bench(), opts.outputDir, setupLog); err != nil {
			setupLog.Error("benchmark failed", "error", err)
			mgr.Stop()
			os.Exit(1)
		}
	}

	if opts.serverAddr == "" {
		return
	}
	app := server.New(repo, mgr, logger.NewEmitter("sort-benchmark-server", spec.LogLevel, os.Stderr))
	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			setupLog.Error("problem stopping server", "error", err)
		}
	}()
	setupLog.Info("serving results", "addr", opts.serverAddr)
	if err := app.Listen(opts.serverAddr); err != nil {
		setupLog.Error("problem running server", "error", err)
		mgr.Stop()
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, mgr *manager.RunManager, repo *repository.ResultRepository, cfg bench.Config, outputDir string, log *slog.Logger) error {
	if err := mgr.Submit(cliRunID, cfg); err != nil {
		return err
	}
	status, err := mgr.Wait(ctx, cliRunID)
	if err != nil {
		return err
	}
	if status.State != manager.StateDone {
		return fmt.Errorf("run %s ended %s: %s", cliRunID, status.State, status.Error)
	}
	result, ok := repo.GetResult(cliRunID)
	if !ok {
		return fmt.Errorf("run %s finished without a stored result", cliRunID)
	}
	if err := (repository.FileStore{Dir: outputDir, Echo: os.Stdout}).Save(result); err != nil {
		return err
	}

	last, ok := result.LastRow()
	if !ok {
		return fmt.Errorf("run %s finished without any size", cliRunID)
	}
	log.Info("fastest at largest size", "size", last.Size, "ranking", repository.FastestK(last, bench.SeriesNames(), len(bench.SeriesNames())))
	return nil
}
