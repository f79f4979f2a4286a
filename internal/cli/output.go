package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string // file (single format) or base path (multiple); empty = board.<format>
	records   int
	cacheHit  bool
}

// writeArtifacts writes each artifact to disk and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths, err := artifactPaths(p.output, p.formats)
	if err != nil {
		return err
	}

	for _, format := range p.formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %d format(s)", len(p.formats))
	for _, format := range p.formats {
		printFile(paths[format])
	}
	printStats(p.records, p.cacheHit)
	return nil
}

// artifactPaths maps each format to its output path. A single format writes
// to output verbatim; several formats share output as a base name.
func artifactPaths(output string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths, nil
	}

	base := output
	if base == "" {
		base = "board"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, format := range formats {
		if _, dup := paths[format]; dup {
			return nil, fmt.Errorf("format %s requested twice", format)
		}
		paths[format] = base + "." + format
	}
	return paths, nil
}
