package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/licitatech/tendermatch/pkg/tendermatch"
	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog/sqlite"
	"github.com/licitatech/tendermatch/pkg/tendermatch/config"
	"github.com/licitatech/tendermatch/pkg/tendermatch/orchestrate"
)

// itemLine is the JSON-lines record emitted per processed item.
type itemLine struct {
	Key         string           `json:"key"`
	Status      string           `json:"status"`
	Category    string           `json:"category,omitempty"`
	Error       string           `json:"error,omitempty"`
	Suggestions []suggestionLine `json:"suggestions,omitempty"`
}

type suggestionLine struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
	Principal bool    `json:"principal"`
	Rank      int     `json:"rank"`
}

func main() {
	var (
		configPath = flag.String("config", "tendermatch.yaml", "Configuration file")
		docPath    = flag.String("doc", "", "Tender document, plain text or HTML (required)")
		dbPath     = flag.String("db", "", "Catalog database path (overrides config)")
		timeout    = flag.Duration("timeout", 10*time.Minute, "Overall run deadline")
	)
	flag.Parse()

	if *docPath == "" {
		log.Fatal("--doc required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if *dbPath != "" {
		cfg.CatalogPath = *dbPath
	}

	document, err := os.ReadFile(*docPath)
	if err != nil {
		log.Fatal("Failed to read document:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cat, err := sqlite.Open(ctx, cfg.CatalogPath)
	if err != nil {
		log.Fatal("Failed to open catalog database:", err)
	}
	defer cat.Close()

	chain := cfg.BuildChain()
	if !chain.Configured() {
		log.Println("Warning: no provider configured, every item will fail normalization")
	}

	engine, err := tendermatch.New(tendermatch.Options{
		Catalog:          cat,
		Chain:            chain,
		Timeout:          cfg.Timeout(),
		Workers:          cfg.Batch.Workers,
		NormalizeWorkers: cfg.Batch.NormalizeWorkers,
		Pace:             cfg.Pace(),
		RetrievalLimit:   cfg.RetrievalLimit,
	})
	if err != nil {
		log.Fatal("Failed to build pipeline:", err)
	}

	report, err := engine.ProcessDocument(ctx, string(document))
	if err != nil {
		log.Fatal("Failed to process document:", err)
	}

	if report.Metadata.TenderNumber != "" {
		log.Printf("Tender %s (%s)", report.Metadata.TenderNumber, report.Metadata.IssuingBody)
	}
	log.Printf("Segmented %d groups, run %s", len(report.Groups), report.Run.RunID)

	enc := json.NewEncoder(os.Stdout)
	for _, res := range report.Run.Results {
		enc.Encode(toLine(res))
	}

	log.Printf("Run complete: %d processed (%d with suggestions, %d without), %d errored",
		report.Run.Processed, report.Run.WithSuggestions, report.Run.WithoutSuggestions, report.Run.Errored)
}

func toLine(res orchestrate.ItemResult) itemLine {
	line := itemLine{
		Key:      res.Key,
		Status:   string(res.Status),
		Category: string(res.Attributes.Category),
	}
	if res.Err != nil {
		line.Error = res.Err.Error()
	}
	for _, s := range res.Ranking.Suggestions {
		line.Suggestions = append(line.Suggestions, suggestionLine{
			Code:      s.Equipment.Code,
			Name:      s.Equipment.Name,
			Score:     s.Score,
			Rationale: s.Rationale,
			Principal: s.IsPrincipal,
			Rank:      s.Rank,
		})
	}
	return line
}
