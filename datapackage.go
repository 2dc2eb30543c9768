package csvdescribe

import (
	stdcsv "encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteDatapackage writes dp as datapackage.json in dir.
func WriteDatapackage(dp *Datapackage, dir string) error {
	f, err := os.Create(filepath.Join(dir, "datapackage.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(dp)
}

var statsCoreColumns = []string{"table", "field", "type", "format"}

var statsMergeableColumns = []string{
	"min_len", "max_len", "min_str", "max_str",
	"count", "empty_count", "estimate_unique",
	"sum", "mean", "min_number", "max_number",
}

var statsFullColumns = []string{
	"min_len", "max_len", "min_str", "max_str",
	"count", "empty_count", "exact_unique", "estimate_unique",
	"sum", "mean", "variance", "stddev",
	"min_number", "max_number",
	"median", "lower_quartile", "upper_quartile", "deciles", "centiles",
}

// WriteStatsCSV flattens per-field statistics of a datapackage into one
// CSV row per field. The column set depends on whether the statistics were
// gathered in mergeable mode.
func WriteStatsCSV(dp *Datapackage, w io.Writer, mergeable bool) error {
	statsColumns := statsFullColumns
	if mergeable {
		statsColumns = statsMergeableColumns
	}

	out := stdcsv.NewWriter(w)

	header := append(append([]string{}, statsCoreColumns...), statsColumns...)
	if err := out.Write(header); err != nil {
		return err
	}

	for _, resource := range dp.Resources {
		for _, field := range resource.Schema.Fields {
			row := []string{resource.Name, field.Name, field.Type, field.Format}

			var stats map[string]any
			if field.Stats != nil {
				raw, err := json.Marshal(field.Stats)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &stats); err != nil {
					return err
				}
			}

			for _, col := range statsColumns {
				row = append(row, statCell(stats[col]))
			}

			if err := out.Write(row); err != nil {
				return err
			}
		}
	}

	out.Flush()
	return out.Error()
}

func statCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
