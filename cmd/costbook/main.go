package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"costbook/internal/catalog"
	"costbook/internal/config"
	"costbook/internal/pipeline"
	"costbook/internal/storage"
	"costbook/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "catalog dataset path (.xlsx|.html|.csv)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		svc := catalog.NewImportService(db, cfg)
		count, err := svc.ImportFile(*input)
		must(err)
		fmt.Printf("catalog import complete: %d items\n", count)
	case "hierarchy:build":
		svc := catalog.NewImportService(db, cfg)
		must(svc.RefreshHierarchy())
		fmt.Printf("hierarchy written to %s\n", filepath.Join(cfg.OutputDir, "catalog-hierarchy.json"))
	case "search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		query := fs.String("q", "", "search query (keywords or code prefix)")
		division := fs.String("division", "", "restrict to a 2-digit division")
		limit := fs.Int("limit", 0, "max results")
		_ = fs.Parse(os.Args[2:])
		engine := loadEngine(db, cfg)
		result, err := engine.Search(*query, *limit, *division)
		must(err)
		fmt.Printf("search %q total=%d tookMs=%d\n", result.Query, result.Total, result.TookMs)
		for _, item := range result.Items {
			fmt.Printf("  %s  %-8s %10.2f  %s\n", item.Code, item.Unit, item.UnitCost, item.Description)
		}
	case "translate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "free-text work description")
		limit := fs.Int("limit", 0, "max results")
		minScore := fs.Float64("minScore", 0, "score threshold")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*text) == "" {
			must(fmt.Errorf("--text is required"))
		}
		engine := loadEngine(db, cfg)
		result, err := engine.Translate(*text, *limit, *minScore)
		must(err)
		fmt.Printf("translate keywords=%v divisions=%v", result.Keywords, result.SuggestedDivisions)
		if result.Quantity != nil {
			fmt.Printf(" qty=%g", *result.Quantity)
		}
		if result.Unit != nil {
			fmt.Printf(" unit=%s", *result.Unit)
		}
		fmt.Printf(" tookMs=%d\n", result.TookMs)
		for _, item := range result.Items {
			fmt.Printf("  %.3f %-8s %s  %s\n", item.Score, item.MatchType, item.Code, item.Description)
		}
	case "batch:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "scope document (.txt|.xlsx|.pdf|.eml|.html)")
		output := fs.String("output", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *output == "" {
			must(fmt.Errorf("--input and --output are required"))
		}
		engine := loadEngine(db, cfg)
		batch := pipeline.NewBatchService(engine)
		result, err := batch.RunFile(*input, *output)
		must(err)
		fmt.Printf("batch done lines=%d matched=%d output=%s\n", len(result.Rows), result.Matched, *output)
	case "batch:watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		engine := loadEngine(db, cfg)
		batch := pipeline.NewBatchService(engine)
		s := watcher.NewService(batch, cfg)
		must(s.Run(ctx))
	case "stats":
		store := catalog.NewStore()
		if err := store.Load(db); err != nil {
			fmt.Printf("catalog items=0 divisions=0 loaded=false (%v)\n", err)
			return
		}
		engine := pipeline.NewEngine(store, cfg)
		stats := engine.Stats()
		fmt.Printf("catalog items=%d divisions=%d loaded=%t\n", stats.Total, stats.Divisions, stats.Loaded)
		divisions, err := engine.GetDivisions()
		must(err)
		for _, d := range divisions {
			fmt.Printf("  %s %-45s %d\n", d.Code, d.Name, d.Count)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func loadEngine(db *storage.DB, cfg config.Config) *pipeline.Engine {
	store := catalog.NewStore()
	must(store.Load(db))
	return pipeline.NewEngine(store, cfg)
}

func usage() {
	fmt.Println("usage: costbook <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:import --input=./catalog.xlsx")
	fmt.Println("  hierarchy:build")
	fmt.Println("  search --q=\"copper pipe\" [--division=22] [--limit=50]")
	fmt.Println("  translate --text=\"install 10 sprinkler heads\" [--limit=20] [--minScore=0.2]")
	fmt.Println("  batch:run --input=./scope.pdf --output=./out/review.xlsx")
	fmt.Println("  batch:watch")
	fmt.Println("  stats")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
