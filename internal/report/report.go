// Package report accumulates per-bulletin outcomes and serializes them to
// the flat CSV the run has always produced.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/tbenitez/epifetch/internal/sources"
)

// FileName keeps the historical report name so downstream spreadsheets keep
// working.
const FileName = "descargas_resultados.csv"

type Record struct {
	Name    string
	Outcome sources.Outcome
}

type Logger struct {
	records []Record
}

func NewLogger() *Logger {
	return &Logger{}
}

// Record appends one outcome, preserving call order.
func (l *Logger) Record(name string, outcome sources.Outcome) {
	l.records = append(l.records, Record{Name: name, Outcome: outcome})
}

func (l *Logger) Records() []Record {
	return l.records
}

// SaveCSV writes all accumulated records to <folder>/descargas_resultados.csv,
// overwriting any previous report. Returns the written path.
func (l *Logger) SaveCSV(folder string) (string, error) {
	path := filepath.Join(folder, FileName)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Nombre", "Estado"}); err != nil {
		_ = f.Close()
		return "", err
	}

	for _, r := range l.records {
		if err := w.Write([]string{r.Name, string(r.Outcome)}); err != nil {
			_ = f.Close()
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}
