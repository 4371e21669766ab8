// tes3-convert generates TES3 plugin record fragments (Static, MiscItem or
// Ingredient) from the .nif model files in a directory, validating id and
// mesh path lengths against the 31-character engine limit.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/SiberianCrab/tes3-pipeline/internal/config"
	"github.com/SiberianCrab/tes3-pipeline/internal/discover"
	"github.com/SiberianCrab/tes3-pipeline/internal/logger"
	"github.com/SiberianCrab/tes3-pipeline/pkg/records"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	if os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		printUsage()
		return
	}

	kind, err := records.ParseKind(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet(kind.String(), flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	var overrides config.Overrides
	fs.StringVar(&overrides.Directory, "dir", "", "Directory with .nif files")
	fs.BoolVar(&overrides.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&overrides.LogFile, "log", "", "Log file path")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = fmt.Sprintf("_TES3_convert_to_%s.log", kind)
	}
	if err := logger.Init(cfg.Logging.Level, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(kind, cfg.Convert); err != nil {
		logger.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("The ending of the words is ALMSIVI")
}

func printUsage() {
	fmt.Println(`tes3-convert - TES3 record fragment generator

Usage:
  tes3-convert <static|miscitem|ingredient> [options]

Options:
  -dir <path>      Directory with .nif files (default ".")
  -config <path>   Config file (default ./tes3-pipeline.yaml)
  -debug           Enable debug logging

Examples:
  tes3-convert static
  tes3-convert ingredient -dir ./meshes`)
}

func run(kind records.Kind, cc config.ConvertConfig) error {
	logger.Sugar.Infof("TES3 Convert to %s", kind)

	settings := cc.Records
	if err := settings.Validate(); err != nil {
		return err
	}

	outputFile := fmt.Sprintf("_TES3_convert_to_%s.txt", kind)
	reportFile := fmt.Sprintf("_TES3_convert_to_%s_errors.txt", kind)
	ignore := map[string]struct{}{outputFile: {}, reportFile: {}}

	files, err := discover.Nif(cc.Directory, ignore)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("No .nif files found in current folder. Conversion canceled.")
		return nil
	}
	logger.Sugar.Infof("Found %d files to convert", len(files))

	var entries []any
	var violations []records.LengthError
	for _, file := range files {
		nifName := file[:len(file)-len(filepath.Ext(file))]
		rec, errs := records.Build(kind, nifName, settings)
		if len(errs) > 0 {
			violations = append(violations, errs...)
			continue
		}
		entries = append(entries, rec)
	}

	if len(entries) > 0 {
		fragment, err := records.Fragment(entries)
		if err != nil {
			return err
		}
		outPath := filepath.Join(cc.Directory, outputFile)
		if err := os.WriteFile(outPath, fragment, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		logger.Sugar.Infof("Conversion result written to: %s", outputFile)
	} else {
		logger.Warn("no valid .nif files for conversion, skipping output file creation")
	}

	if len(violations) > 0 {
		report := records.Report(violations, settings)
		reportPath := filepath.Join(cc.Directory, reportFile)
		if err := os.WriteFile(reportPath, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", reportPath, err)
		}
		logger.Sugar.Warnf("incorrect records found (%d), see: %s", len(violations), reportFile)
	}

	logger.Sugar.Infof("Processing complete. Records: %d/%d", len(entries), len(files))
	return nil
}
