// Package output persists deduplicated lead collections to CSV or XLSX
// files under the configured output directory.
package output

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Row producers. Both lead types satisfy this through their Row method.
type Rower interface {
	Row() []string
}

// WriteCSV writes a header row and one row per lead to path, creating
// parent directories as needed.
func WriteCSV[T Rower](path string, fields []string, leads []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "output: create dir for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(fields); err != nil {
		return eris.Wrap(err, "output: write header")
	}
	for _, lead := range leads {
		if err := w.Write(lead.Row()); err != nil {
			return eris.Wrap(err, "output: write row")
		}
	}

	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "output: flush %s", path)
	}
	return nil
}
