// tes3-retex generates retextured .nif.json variants from a base model
// set: one output per configured affix, with NiTriShape node names and the
// base material texture rewritten. Variant lists live in the config file.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/SiberianCrab/tes3-pipeline/internal/config"
	"github.com/SiberianCrab/tes3-pipeline/internal/discover"
	"github.com/SiberianCrab/tes3-pipeline/internal/logger"
	"github.com/SiberianCrab/tes3-pipeline/internal/retex"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	var overrides config.Overrides
	flag.StringVar(&overrides.Directory, "dir", "", "Directory with .nif.json files")
	flag.BoolVar(&overrides.Debug, "debug", false, "Enable debug logging")
	flag.StringVar(&overrides.LogFile, "log", "", "Log file path")
	flag.Parse()

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = "_TES3_autoretex.log"
	}
	if err := logger.Init(cfg.Logging.Level, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg.Retex); err != nil {
		logger.Error("retexturing failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("The ending of the words is ALMSIVI")
}

func run(s retex.Settings) error {
	logger.Sugar.Infof("TES3 Automatic Retexturing | %s", s.BaseName)

	if err := s.Validate(); err != nil {
		return err
	}

	candidates, err := discover.NifJSON(s.Directory)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		logger.Info("No .nif.json files found in current folder. Conversion canceled.")
		return nil
	}

	mapping := retex.AffixMapping(s.Suffixes, s.NewAffixes, s.BaseAffix)
	valid, badBase, badAffix := retex.Plan(s, candidates, mapping)

	for _, f := range badBase {
		logger.Sugar.Warnf("%s does not match base_name %s, skipping", f, s.BaseName)
	}
	for _, f := range badAffix {
		logger.Sugar.Warnf("%s does not match a known affix, skipping", f)
	}
	if len(valid) == 0 {
		logger.Warn("No valid files found. Conversion canceled.")
		return nil
	}

	reports, err := retex.Run(s, valid)
	if err != nil {
		return err
	}

	created, failed := 0, 0
	for _, r := range reports {
		switch {
		case r.Err != nil:
			failed++
			logger.Sugar.Errorf("[FAIL] %s: %v", r.Name, r.Err)
		case r.Skipped != "":
			logger.Sugar.Warnf("%s: %s, skipping replacement", r.Name, r.Skipped)
		default:
			for _, out := range r.Outputs {
				logger.Sugar.Infof("File created --------> %s", out)
			}
			created += len(r.Outputs)
		}
	}

	logger.Sugar.Infof("Processing complete. Created %d variants from %d files (%d failed)", created, len(reports), failed)
	return nil
}
