package ports

import "riskhypo/domain/dataset"

// DatasetReader loads a raw tabular dataset from some source
type DatasetReader interface {
	ReadTable() (*dataset.Table, error)
}
