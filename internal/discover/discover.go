// Package discover lists candidate input files for the pipeline tools.
// The transforms never walk directories themselves; they are handed an
// ordered slice of names from here.
package discover

import (
	"fmt"
	"os"
	"strings"
)

// nifJSONExt is the two-part extension of Sniff model dumps.
const nifJSONExt = ".nif.json"

// NifJSON returns the .nif.json files in dir that are not already outputs
// of a previous run: names starting with "mirrored_" or containing any of
// the exclude tokens (mirror/UV suffixes) are skipped. Results come back
// in directory order, which os.ReadDir keeps sorted by name.
func NifJSON(dir string, exclude ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, nifJSONExt) {
			continue
		}
		if strings.HasPrefix(name, "mirrored_") {
			continue
		}
		if containsAny(name, exclude) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

// Nif returns the .nif files in dir (case-insensitive extension), minus the
// ignored names (the tool's own output and log files).
func Nif(dir string, ignore map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".nif") {
			continue
		}
		if _, skip := ignore[name]; skip {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func containsAny(name string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(name, tok) {
			return true
		}
	}
	return false
}
