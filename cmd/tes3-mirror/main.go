// tes3-mirror mirrors TES3 mesh geometry in Sniff .nif.json dumps: the
// nif command reflects positions across an axis (with winding fixup), the
// uvw command reflects texture coordinates and writes a U and a V variant
// per model.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/SiberianCrab/tes3-pipeline/internal/batch"
	"github.com/SiberianCrab/tes3-pipeline/internal/config"
	"github.com/SiberianCrab/tes3-pipeline/internal/discover"
	"github.com/SiberianCrab/tes3-pipeline/internal/logger"
	"github.com/SiberianCrab/tes3-pipeline/pkg/nifjson"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "nif":
		cmdNif(os.Args[2:])
	case "uvw":
		cmdUVW(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tes3-mirror - TES3 automatic mesh mirroring

Usage:
  tes3-mirror <command> [options]

Commands:
  nif [-axis x|y]   Mirror vertices/normals/center across an axis,
                    reversing triangle winding; writes <name>_m.nif.json
  uvw               Mirror texture coordinates; writes a U variant
                    (<name>a) and a V variant (<name>b) per model

Options:
  -dir <path>       Directory with .nif.json files (default ".")
  -config <path>    Config file (default ./tes3-pipeline.yaml)
  -workers <n>      Files processed in parallel (default 1)
  -debug            Enable debug logging

Examples:
  tes3-mirror nif
  tes3-mirror nif -axis y -dir ./meshes -workers 4
  tes3-mirror uvw`)
}

// toolFlags holds the flags shared by both commands.
type toolFlags struct {
	configPath string
	overrides  config.Overrides
}

func parseToolFlags(fs *flag.FlagSet, args []string) toolFlags {
	var tf toolFlags
	fs.StringVar(&tf.configPath, "config", "", "Path to config file")
	fs.StringVar(&tf.overrides.Directory, "dir", "", "Directory with .nif.json files")
	fs.IntVar(&tf.overrides.Workers, "workers", 0, "Files processed in parallel")
	fs.BoolVar(&tf.overrides.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&tf.overrides.LogFile, "log", "", "Log file path")
	fs.Parse(args)
	return tf
}

// setup loads config and initializes logging; defaultLog is the per-tool
// log file used when none is configured.
func setup(tf toolFlags, defaultLog string) *config.Config {
	cfg, err := config.Load(tf.configPath, tf.overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = defaultLog
	}
	if err := logger.Init(cfg.Logging.Level, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdNif(args []string) {
	fs := flag.NewFlagSet("nif", flag.ExitOnError)
	axisName := fs.String("axis", "x", "Mirror axis: x or y")
	tf := parseToolFlags(fs, args)

	var axis nifjson.Axis
	switch strings.ToLower(*axisName) {
	case "x":
		axis = nifjson.AxisX
	case "y":
		axis = nifjson.AxisY
	default:
		fmt.Fprintf(os.Stderr, "Unknown axis: %s (expected x or y)\n", *axisName)
		os.Exit(1)
	}

	cfg := setup(tf, "_TES3_automirror_NIF.log")
	defer logger.Sync()

	mc := cfg.Mirror
	logger.Sugar.Infof("TES3 Automatic Mirroring | NIF | %s-axis", axis)

	files, err := discover.NifJSON(mc.Directory, mc.MirrorSuffix)
	if err != nil {
		logger.Error("scanning directory failed", zap.Error(err))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Info("No .nif.json files found in current folder. Conversion canceled.")
		farewell()
		return
	}
	logger.Sugar.Infof("Found %d files to process:", len(files))

	classify := nifjson.MarkerClassifier(mc.Marker)
	width := columnWidth(files)

	results := batch.Run(files, mc.Workers, func(name string) batch.Result {
		return mirrorNifFile(mc, classify, axis, name)
	}, progress)

	reportResults(results, width)
	logger.Sugar.Infof("Processing complete. Success: %d/%d", batch.Succeeded(results), len(files))
	farewell()
}

func mirrorNifFile(mc config.MirrorConfig, classify nifjson.Classifier, axis nifjson.Axis, name string) batch.Result {
	res := batch.Result{Name: name}

	doc, err := nifjson.ParseFile(filepath.Join(mc.Directory, name), classify)
	if err != nil {
		res.Err = err
		return res
	}

	mirrored, diags := nifjson.MirrorAxis(doc, axis)
	for _, d := range diags {
		res.Warnings = append(res.Warnings, d.String())
	}

	outName := nifjson.MirrorName(name, mc.MirrorSuffix)
	if err := mirrored.WriteFile(filepath.Join(mc.Directory, outName)); err != nil {
		res.Err = err
		return res
	}
	res.Outputs = []string{outName}
	return res
}

func cmdUVW(args []string) {
	fs := flag.NewFlagSet("uvw", flag.ExitOnError)
	tf := parseToolFlags(fs, args)

	cfg := setup(tf, "_TES3_automirror_UVW.log")
	defer logger.Sync()

	mc := cfg.Mirror
	logger.Info("TES3 Automatic Mirroring | UVW | U/V-axis")

	files, err := discover.NifJSON(mc.Directory, mc.USuffix, mc.VSuffix)
	if err != nil {
		logger.Error("scanning directory failed", zap.Error(err))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Info("No .nif.json files found in current folder. Conversion canceled.")
		farewell()
		return
	}
	logger.Sugar.Infof("Found %d files to process:", len(files))

	classify := nifjson.MarkerClassifier(mc.Marker)
	width := columnWidth(files)

	results := batch.Run(files, mc.Workers, func(name string) batch.Result {
		return mirrorUVFile(mc, classify, name)
	}, progress)

	reportResults(results, width)
	logger.Sugar.Infof("Processing complete. Success: %d/%d", batch.Succeeded(results), len(files))
	farewell()
}

func mirrorUVFile(mc config.MirrorConfig, classify nifjson.Classifier, name string) batch.Result {
	res := batch.Result{Name: name}

	doc, err := nifjson.ParseFile(filepath.Join(mc.Directory, name), classify)
	if err != nil {
		res.Err = err
		return res
	}

	// Both variants come from the same source document; each transform
	// returns its own independent copy.
	variants := []struct {
		axis   nifjson.UVAxis
		suffix string
	}{
		{nifjson.AxisU, mc.USuffix},
		{nifjson.AxisV, mc.VSuffix},
	}

	for _, v := range variants {
		mirrored, diags := nifjson.MirrorUV(doc, v.axis)
		for _, d := range diags {
			res.Warnings = append(res.Warnings, d.String())
		}

		outName := nifjson.UVName(name, v.suffix, mc.MirrorSuffix)
		if err := mirrored.WriteFile(filepath.Join(mc.Directory, outName)); err != nil {
			res.Err = err
			return res
		}
		res.Outputs = append(res.Outputs, outName)
	}
	return res
}

// columnWidth sizes the filename column for aligned progress lines.
func columnWidth(files []string) int {
	width := 0
	for _, f := range files {
		if len(f) > width {
			width = len(f)
		}
	}
	if width > 64 {
		width = 64
	}
	return width
}

// pad right-pads name with dots to the column width.
func pad(name string, width int) string {
	if len(name) >= width {
		return name
	}
	return name + strings.Repeat(".", width-len(name))
}

func progress(processed, total int64) {
	logger.Sugar.Infof("  [%d/%d] processed", processed, total)
}

func reportResults(results []batch.Result, width int) {
	for _, r := range results {
		for _, w := range r.Warnings {
			logger.Sugar.Warnf("%s: %s", r.Name, w)
		}
		if r.Err != nil {
			logger.Sugar.Errorf("[FAIL] %s -> %v", pad(r.Name, width), r.Err)
			continue
		}
		for i, out := range r.Outputs {
			if i == 0 {
				logger.Sugar.Infof("%s -> %s", pad(r.Name, width), out)
			} else {
				logger.Sugar.Infof("%s -> %s", strings.Repeat(" ", width), out)
			}
		}
	}
}

func farewell() {
	logger.Info("The ending of the words is ALMSIVI")
}
