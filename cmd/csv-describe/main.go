package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	csvdescribe "github.com/chop-dbhi/csv-describe"
)

func main() {
	var (
		delimiter       string
		quote           string
		compressionType string

		stats          bool
		mergeableStats bool
		forceString    bool

		workers      int
		outputDir    string
		statsCSVPath string
		verbose      bool
	)

	flag.StringVar(&delimiter, "delim", "", "CSV delimiter. Sniffed if empty.")
	flag.StringVar(&quote, "quote", `"`, "CSV quote character.")
	flag.StringVar(&compressionType, "compression", "", "Compression used.")
	flag.BoolVar(&stats, "stats", false, "Compute column statistics.")
	flag.BoolVar(&mergeableStats, "mergeable-stats", false, "Restrict statistics to the mergeable subset.")
	flag.BoolVar(&forceString, "force-string", false, "Skip type inference; all columns are strings.")
	flag.IntVar(&workers, "workers", 0, "Scan files in parallel with this many workers.")
	flag.StringVar(&outputDir, "out", ".", "Directory to write datapackage.json to.")
	flag.StringVar(&statsCSVPath, "stats-csv", "", "Also write flattened statistics to this CSV file.")
	flag.BoolVar(&verbose, "v", false, "Verbose logging.")

	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		logger.Fatal().Msg("file name or directory required")
	}

	files, err := expandArgs(args)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot resolve inputs")
	}
	if len(files) == 0 {
		logger.Fatal().Msg("no CSV files found")
	}

	opts := &csvdescribe.Options{
		Stats:          stats || statsCSVPath != "",
		MergeableStats: mergeableStats,
		ForceString:    forceString,
		Workers:        workers,
		Compression:    compressionType,
		Logger:         logger,
	}

	if delimiter != "" {
		opts.Delimiter = delimiter[0]
	}
	if quote != "" {
		opts.Quote = quote[0]
	}

	dp, err := csvdescribe.DescribeFiles(files, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("describe failed")
	}

	if err := csvdescribe.WriteDatapackage(dp, outputDir); err != nil {
		logger.Fatal().Err(err).Msg("cannot write datapackage.json")
	}

	if statsCSVPath != "" {
		f, err := os.Create(statsCSVPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot create stats CSV")
		}

		mergeable := mergeableStats || workers > 0
		if err := csvdescribe.WriteStatsCSV(dp, f, mergeable); err != nil {
			f.Close()
			logger.Fatal().Err(err).Msg("cannot write stats CSV")
		}
		f.Close()
	}

	logger.Info().Int("resources", len(dp.Resources)).Str("out", outputDir).Msg("done")
}

// expandArgs resolves directories to the CSV files inside them.
func expandArgs(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !stat.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.Contains(name, ".csv") {
				files = append(files, filepath.Join(arg, name))
			}
		}
	}

	return files, nil
}
