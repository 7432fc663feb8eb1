package domain

// RawDataset is an untyped tabular record set as read from an external
// source (CSV or API payload). Rows map column name to cell text; the
// validator turns this into typed OperationalRecords.
type RawDataset struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the dataset declares the named column.
func (d RawDataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}
