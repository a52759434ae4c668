package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/causalcore/internal/config"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/fsutil"
)

const hclExt = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges them into one model.
// The result is not validated; see config.Validate.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := FindHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := config.NewModel()
	parser := hclparse.NewParser()
	var ingestFile, telemetryFile, seedFile string

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Ingest != nil {
			if ingestFile != "" {
				return nil, fmt.Errorf("ingest block in %s already defined in %s", file, ingestFile)
			}
			ingestFile = file
			if model.Ingest, err = translateIngest(root.Ingest); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		if root.Telemetry != nil {
			if telemetryFile != "" {
				return nil, fmt.Errorf("telemetry block in %s already defined in %s", file, telemetryFile)
			}
			telemetryFile = file
			model.Telemetry = translateTelemetry(root.Telemetry)
		}
		if root.Seed != nil {
			if seedFile != "" {
				return nil, fmt.Errorf("seed block in %s already defined in %s", file, seedFile)
			}
			seedFile = file
			model.Seed = &config.Seed{Path: root.Seed.Path, Watch: root.Seed.Watch}
		}
		for _, fb := range root.Facts {
			fact, err := translateFact(ctx, fb, file)
			if err != nil {
				return nil, err
			}
			model.Facts = append(model.Facts, fact)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "facts", len(model.Facts), "ingest", model.Ingest != nil, "seed", model.Seed != nil)
	return model, nil
}

// FindHCLFiles walks all given paths and returns a flat list of the .hcl files
// found, in lexical order within each directory. Paths that do not exist are
// skipped.
func FindHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if IsHCLFile(path) {
				add(path)
			}
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, hclExt)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}

// IsHCLFile reports whether path has the .hcl extension.
func IsHCLFile(path string) bool {
	return filepath.Ext(path) == hclExt
}
