// Package dataset loads the reference relations into catalog tables.
// Two layouts are supported: a directory holding one CSV file per relation,
// and a single JSON document keyed by relation name. Documents are read as
// HJSON, so hand-edited files may carry comments and trailing commas.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"landed-cost/core/catalog"
	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// Format is the on-disk layout of a dataset
type Format string

const (
	// FormatCSV is a directory with one CSV file per relation
	FormatCSV Format = "csv"

	// FormatJSON is a single JSON or HJSON document
	FormatJSON Format = "json"
)

// Loader produces reference tables
type Loader interface {
	Load() (catalog.Tables, error)
}

// New picks a loader for a path. An empty format is detected from the path:
// directories load as CSV, files as documents.
func New(path string, format Format) (Loader, error) {
	if format == "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Input(fmt.Sprintf("dataset %s: %v", path, err))
		}
		format = FormatJSON
		if info.IsDir() {
			format = FormatCSV
		}
	}

	switch Format(strings.ToLower(string(format))) {
	case FormatCSV:
		return &CSVLoader{Dir: path}, nil
	case FormatJSON:
		return &DocumentLoader{Path: path}, nil
	default:
		return nil, errors.Input(fmt.Sprintf("unknown dataset format %q", format))
	}
}

// Load reads a dataset and indexes it into a store. Integrity problems are
// logged but never block loading; they surface again per SKU at compute time.
func Load(path string, format Format) (*catalog.Store, error) {
	loader, err := New(path, format)
	if err != nil {
		return nil, err
	}
	tables, err := loader.Load()
	if err != nil {
		return nil, err
	}

	store := catalog.NewStore(tables)
	for _, problem := range store.Validate(catalog.DefaultValidationRules()) {
		logging.Warn("reference data problem", zap.String("dataset", path), zap.Error(problem))
	}

	logging.Info("dataset loaded",
		zap.String("path", filepath.Clean(path)),
		zap.Int("products", len(tables.Products)),
		zap.Int("bom_lines", len(tables.BOM)),
		zap.Int("components", len(tables.Components)),
		zap.Int("sites", len(tables.Sites)),
		zap.Int("lanes", len(tables.LogisticsLanes)),
		zap.Int("scenarios", len(tables.TariffScenarios)),
	)
	return store, nil
}
