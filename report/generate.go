package report

import (
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/series"
)

// Comparison is one exported dataset, the units drawn in one figure
type Comparison struct {
	File  string
	Units []schema.Unit
}

// Generate builds every comparison and writes it under dir. Units
// failing to build are logged and left out of their comparison.
func Generate(source ObservationSource, registry population.Registry, opts series.Options, dir string, comparisons []Comparison) ([]string, error) {
	paths := make([]string, 0, len(comparisons))
	for _, c := range comparisons {
		list, errs := Build(source, c.Units, registry, opts)
		for _, err := range errs {
			log.WithFields(log.Fields{"prefix": logPrefix, "file": c.File, "error": err}).Warn("skip unit")
		}

		path, err := WriteFile(dir, c.File, list)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
