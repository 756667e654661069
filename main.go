// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/cpmech/govfm/inp"
	"github.com/cpmech/govfm/out"
)

// RunConfig holds runtime options read from a YAML file
type RunConfig struct {
	LogLevel string `yaml:"loglevel"` // "debug", "info", "warn" or "error"
	LogFile  string `yaml:"logfile"`  // log output path; empty means stderr
	SaveVw   bool   `yaml:"savevw"`   // write the virtual work table
	SaveVtu  bool   `yaml:"savevtu"`  // write the VTU file with the last frame
	VwFile   string `yaml:"vwfile"`   // filename key of the virtual work table
}

// readRunConfig reads runtime options; an empty path means defaults
func readRunConfig(path string) (cfg *RunConfig, err error) {
	cfg = &RunConfig{LogLevel: "info", SaveVw: true, SaveVtu: true, VwFile: "virtual_work"}
	if path == "" {
		return
	}
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read run configuration %q", path)
	}
	if err = yaml.Unmarshal(b, cfg); err != nil {
		return nil, chk.Err("cannot unmarshal run configuration %q:\n%v", path, err)
	}
	return
}

// initLogger initializes the logger with the specified level and log file name
func initLogger(level, logfile string) *zap.Logger {
	config := zap.NewProductionConfig()
	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if logfile != "" {
		config.OutputPaths = []string{logfile}
		config.ErrorOutputPaths = []string{logfile}
	}
	config.EncoderConfig.TimeKey = "t"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	logger, _ := config.Build()
	return logger
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "", ".vfm", true)
	runcfgpath := io.ArgToString(1, "")
	verbose := io.ArgToBool(2, true)

	// message
	if verbose {
		io.PfWhite("\nGovfm -- Virtual Fields Method for parameter identification\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"run configuration", "runcfgpath", runcfgpath,
			"show messages", "verbose", verbose,
		))
	}

	// runtime options and logger
	runcfg, err := readRunConfig(runcfgpath)
	if err != nil {
		chk.Panic("cannot start:\n%v", err)
	}
	logger := initLogger(runcfg.LogLevel, runcfg.LogFile)
	defer logger.Sync()

	// interruption handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// input data
	sim, err := inp.ReadVfm(fnamepath)
	if err != nil {
		logger.Fatal("cannot read input", zap.Error(err))
	}
	logger.Info("input loaded",
		zap.String("file", fnamepath),
		zap.Int("vertices", len(sim.Msh.Verts)),
		zap.Int("cells", len(sim.Msh.Cells)),
		zap.Int("frames", len(sim.Measured)))

	// problem setup
	p, cfg, err := sim.BuildProblem(verbose)
	if err != nil {
		logger.Fatal("cannot build problem", zap.Error(err))
	}
	if err = p.Init(); err != nil {
		logger.Fatal("cannot initialise problem", zap.Error(err))
	}

	// identification
	res, err := p.Identify(ctx, cfg)
	if err != nil {
		logger.Fatal("identification failed", zap.Error(err))
	}
	logger.Info("identification finished",
		zap.String("reason", res.Report.Reason.String()),
		zap.Int("iterations", res.Report.It),
		zap.Float64("cost", res.Report.FinalCost))

	// results
	if verbose {
		out.PrintParams(res)
	}
	if runcfg.SaveVw {
		out.WriteVwTable(sim.Data.DirOut, runcfg.VwFile, res)
	}
	if runcfg.SaveVtu {
		out.WriteVtu(sim.Data.DirOut, fnkey, sim.Msh, p.Meas, res, p.Meas.Nt()-1)
	}
}
