// Package locator finds the raw dataset among a configured list of candidate
// paths and hands loading off to the tabular reader. Locating nothing at all
// is the one terminal failure of the pipeline.
package locator

import (
	"log"
	"os"

	"riskhypo/adapters/tabular"
	"riskhypo/domain/dataset"
	apperrors "riskhypo/internal/errors"
)

// Locator probes candidate paths in order and loads the first that exists
type Locator struct {
	candidates []string
}

// New creates a locator over the given candidate paths
func New(candidates []string) *Locator {
	return &Locator{candidates: candidates}
}

// Locate returns the first existing candidate path
func (l *Locator) Locate() (string, error) {
	for _, p := range l.candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", apperrors.NoInputData("no input data located among candidate paths")
}

// ReadTable locates and loads the dataset
func (l *Locator) ReadTable() (*dataset.Table, error) {
	path, err := l.Locate()
	if err != nil {
		return nil, err
	}
	log.Printf("[locator] loading %s", path)
	return tabular.NewReader(path).ReadTable()
}
