// Package csvfile loads plant telemetry extracts from CSV files. The
// original deployment feeds the pipeline from hourly CSV exports; the
// loader parses them into the raw dataset shape the validator consumes.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
)

// Loader reads CSV telemetry extracts.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a CSV loader.
func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// LoadFile reads the CSV file at path.
func (l *Loader) LoadFile(path string) (domain.RawDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawDataset{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	ds, err := l.Load(f)
	if err != nil {
		return domain.RawDataset{}, fmt.Errorf("load %s: %w", path, err)
	}

	l.log.Info("Loaded CSV extract",
		zap.String("path", path),
		zap.Int("rows", len(ds.Rows)),
	)
	return ds, nil
}

// Load reads CSV data from r. The first row is the header; column names
// are lower-cased so the required-column check is case-insensitive.
// Short rows leave their trailing cells empty rather than failing the
// whole extract.
func (l *Loader) Load(r io.Reader) (domain.RawDataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.RawDataset{}, fmt.Errorf("csv extract is empty")
	}
	if err != nil {
		return domain.RawDataset{}, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawDataset{}, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return domain.RawDataset{Columns: columns, Rows: rows}, nil
}
