package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querydex/internal/domain/boolquery"
	"github.com/kailas-cloud/querydex/internal/domain/geo"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/export"
	logpkg "github.com/kailas-cloud/querydex/internal/logger"
	taxrepo "github.com/kailas-cloud/querydex/internal/repository/taxonomy"
	compileuc "github.com/kailas-cloud/querydex/internal/usecase/compile"
	crossmatchuc "github.com/kailas-cloud/querydex/internal/usecase/crossmatch"
	matchuc "github.com/kailas-cloud/querydex/internal/usecase/match"
	pipelineuc "github.com/kailas-cloud/querydex/internal/usecase/pipeline"
	similarityuc "github.com/kailas-cloud/querydex/internal/usecase/similarity"
	"github.com/kailas-cloud/querydex/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "queryctl",
		Usage:   "Boolean search synthesis toolkit for recruitment sourcing",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "taxonomy",
				Aliases: []string{"t"},
				Usage:   "Path to the taxonomy YAML file",
				Value:   filepath.Join("config", "taxonomy.yaml"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "taxonomy",
				Usage:  "Export all boolean searches per function group to an Excel workbook",
				Action: taxonomyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory for export files",
						Value:   "exports",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Print the compiled query variants for a function group",
				ArgsUsage: "<group-id>",
				Action:    searchCommand,
			},
			{
				Name:      "match",
				Usage:     "Match a vacancy title to a function group",
				ArgsUsage: "<title>",
				Action:    matchCommand,
			},
			{
				Name:      "similar",
				Usage:     "Rank function groups by similarity to the given group",
				ArgsUsage: "<group-id>",
				Action:    similarCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum similarity score",
						Value: similarityuc.DefaultThreshold,
					},
				},
			},
			{
				Name:      "overlap",
				Usage:     "Analyze the market overlap between two function groups",
				ArgsUsage: "<group-a> <group-b>",
				Action:    overlapCommand,
			},
			{
				Name:   "run",
				Usage:  "Compile searches for a vacancy spreadsheet and write export workbooks",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the vacancy Excel file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory for export files",
						Value:   "exports",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent compile workers",
						Value: 8,
					},
					&cli.BoolFlag{
						Name:  "training-data",
						Usage: "Also generate model training datasets",
					},
				},
			},
			{
				Name:   "training",
				Usage:  "Generate model training datasets from the taxonomy",
				Action: trainingCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory for the datasets",
						Value:   filepath.Join("exports", "training_data"),
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadEngine loads the taxonomy and builds the service graph shared by all commands.
func loadEngine(c *cli.Context) (taxonomy.Store, geo.Table, *zap.Logger, error) {
	logger, err := logpkg.NewLogger("local", c.String("log-level"))
	if err != nil {
		return taxonomy.Store{}, geo.Table{}, nil, fmt.Errorf("create logger: %w", err)
	}

	store, regions, err := taxrepo.Load(c.String("taxonomy"))
	if err != nil {
		return taxonomy.Store{}, geo.Table{}, nil, fmt.Errorf("load taxonomy: %w", err)
	}
	return store, regions, logger, nil
}

func taxonomyCommand(c *cli.Context) error {
	store, regions, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	matcher := matchuc.New(store)
	compiler := compileuc.New(store, regions, matcher)
	sim := similarityuc.New(store)
	pipe := pipelineuc.New(store, compiler, sim, logger)

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	stamp := time.Now().Format("20060102_150405")

	taxPath := filepath.Join(outDir, "boolean_taxonomy_"+stamp+".xlsx")
	if err := export.WriteTaxonomyXLSX(taxPath, pipe.TaxonomyRows()); err != nil {
		return err
	}
	matrixPath := filepath.Join(outDir, "lookalike_matrix_"+stamp+".xlsx")
	if err := export.WriteMatrixXLSX(matrixPath, pipe.SimilarityMatrix()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Groups: %d\n", store.Len())
	fmt.Fprintf(os.Stderr, "Taxonomy workbook: %s\n", taxPath)
	fmt.Fprintf(os.Stderr, "Similarity matrix: %s\n", matrixPath)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: queryctl search <group-id>")
	}

	store, regions, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, err := store.Get(c.Args().First())
	if err != nil {
		return err
	}

	compiler := compileuc.New(store, regions, matchuc.New(store))
	searches := compiler.Variants(g)

	complexity := make(map[string]float64, len(searches))
	coverage := make(map[string]float64, len(searches))
	for name, query := range searches {
		complexity[string(name)] = boolquery.Complexity(query)
		coverage[string(name)] = boolquery.Coverage(query, g.AllTitles())
	}

	return printJSON(map[string]any{
		"group":      g.ID(),
		"name":       g.Name(),
		"searches":   searches,
		"complexity": complexity,
		"coverage":   coverage,
	})
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: queryctl match <title>")
	}

	store, _, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, score, err := matchuc.New(store).Match(c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"group":    g.ID(),
		"name":     g.Name(),
		"category": g.Category(),
		"score":    score,
	})
}

func similarCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: queryctl similar <group-id>")
	}

	store, _, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ranked, err := similarityuc.New(store).Rank(c.Args().First(), c.Float64("threshold"))
	if err != nil {
		return err
	}
	return printJSON(ranked)
}

func overlapCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: queryctl overlap <group-a> <group-b>")
	}

	store, _, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sim := similarityuc.New(store)
	report, err := crossmatchuc.New(store, sim).MarketOverlap(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runCommand(c *cli.Context) error {
	store, regions, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	vacancies, err := export.ReadVacanciesXLSX(c.String("input"))
	if err != nil {
		return err
	}
	logger.Info("Vacancies loaded",
		zap.String("input", c.String("input")),
		zap.Int("count", len(vacancies)),
	)

	matcher := matchuc.New(store)
	compiler := compileuc.New(store, regions, matcher)
	sim := similarityuc.New(store)
	pipe := pipelineuc.New(store, compiler, sim, logger).WithPoolSize(c.Int("pool-size"))

	rows, stats, err := pipe.ProcessVacancies(context.Background(), vacancies)
	if err != nil {
		return fmt.Errorf("process vacancies: %w", err)
	}

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	stamp := time.Now().Format("20060102_150405")

	searchesPath := filepath.Join(outDir, "boolean_searches_"+stamp+".xlsx")
	if err := export.WriteVacanciesXLSX(searchesPath, rows); err != nil {
		return err
	}
	taxPath := filepath.Join(outDir, "boolean_taxonomy_"+stamp+".xlsx")
	if err := export.WriteTaxonomyXLSX(taxPath, pipe.TaxonomyRows()); err != nil {
		return err
	}
	matrixPath := filepath.Join(outDir, "lookalike_matrix_"+stamp+".xlsx")
	if err := export.WriteMatrixXLSX(matrixPath, pipe.SimilarityMatrix()); err != nil {
		return err
	}

	if c.Bool("training-data") {
		meta, err := export.NewTrainingGenerator(store).WriteTrainingData(
			filepath.Join(outDir, "training_data"),
		)
		if err != nil {
			return err
		}
		logger.Info("Training data written", zap.Any("statistics", meta.Statistics))
	}

	logger.Info("Batch run complete",
		zap.Int("processed", stats.Processed),
		zap.Int("matched", stats.Matched),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("rows", stats.Rows),
	)
	fmt.Fprintf(os.Stderr, "Searches workbook: %s\n", searchesPath)
	return nil
}

func trainingCommand(c *cli.Context) error {
	store, _, logger, err := loadEngine(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	meta, err := export.NewTrainingGenerator(store).WriteTrainingData(c.String("out"))
	if err != nil {
		return err
	}
	return printJSON(meta)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
