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

	"fomezero/internal/config"
	"fomezero/internal/dashboard"
	"fomezero/internal/pipeline"
	"fomezero/internal/refresher"
	"fomezero/internal/server"
	"fomezero/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("RAW_DATA_PATH", cfg.RawDataPath))
	must(cfg.Require("PROCESSED_DATA_PATH", cfg.ProcessedDataPath))

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	loader := pipeline.NewLoader(db, cfg)

	cmd := os.Args[1]
	switch cmd {
	case "clean":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		raw := fs.String("raw", cfg.RawDataPath, "raw csv path")
		out := fs.String("out", cfg.ProcessedDataPath, "derived csv path")
		_ = fs.Parse(os.Args[2:])
		res, err := pipeline.Clean(*raw, *out)
		must(err)
		fmt.Printf("clean done read=%d dropped_missing=%d dropped_duplicates=%d kept=%d output=%s\n",
			res.Stats.Read, res.Stats.DroppedMissing, res.Stats.DroppedDuplicates, res.Stats.Kept, *out)
	case "export:csv":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output csv path")
		sep := fs.String("sep", ";", "field delimiter")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		comma := []rune(*sep)
		if len(comma) != 1 {
			must(fmt.Errorf("--sep must be a single character"))
		}
		ds, err := loader.Load()
		must(err)
		must(pipeline.WriteCSVFile(*out, ds.Records, comma[0]))
		fmt.Printf("exported %d rows to %s\n", len(ds.Records), *out)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, "restaurants.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		ds, err := loader.Load()
		must(err)
		must(pipeline.ExportXLSX(*ds, *out))
		fmt.Printf("exported %d rows to %s\n", len(ds.Records), *out)
	case "summary":
		ds, err := loader.Load()
		must(err)
		o := dashboard.BuildOverview(ds.Records)
		fmt.Printf("checksum:    %s\n", ds.Checksum)
		fmt.Printf("restaurants: %d\n", o.Restaurants)
		fmt.Printf("countries:   %d\n", o.Countries)
		fmt.Printf("cities:      %d\n", o.Cities)
		fmt.Printf("votes:       %s\n", o.VotesText)
		fmt.Printf("cuisines:    %d\n", o.Cuisines)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "number of runs")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%d %s trace=%s checksum=%.12s kept=%d totalMs=%.0f\n",
				r.ID, r.CreatedAt, r.TraceID, r.Checksum, r.Counts["kept"], r.Timings["totalMs"])
		}
	case "serve":
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		_, err := loader.Load()
		must(err)

		go func() {
			_ = refresher.NewService(loader, cfg).Run(ctx)
		}()
		must(server.NewServer(cfg, loader).Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: fomezero <command>")
	fmt.Println("commands:")
	fmt.Println("  clean [--raw=dataset/raw/data.csv] [--out=dataset/processed/data.csv]")
	fmt.Println("  export:csv --out=./out/data.csv [--sep=;]")
	fmt.Println("  export:xlsx [--out=./out/restaurants.xlsx]")
	fmt.Println("  summary")
	fmt.Println("  runs [--limit=10]")
	fmt.Println("  serve")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
