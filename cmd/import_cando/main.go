package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/repository/supabase"
	"lingua-tutor/internal/util"

	"go.uber.org/zap"
)

const batchSize = 50

// seedStatement mirrors one entry of the filtered CEFR export.
type seedStatement struct {
	Level      string `json:"level"`
	SkillType  string `json:"skill_type"`
	Mode       string `json:"mode"`
	Activity   string `json:"activity"`
	Scale      string `json:"scale"`
	Descriptor string `json:"descriptor"`
}

// buildStatements converts the seed entries, skipping rows with unknown
// levels. Display order is 1-based and contiguous so skipped rows leave
// no gaps.
func buildStatements(seeds []seedStatement, log *zap.Logger) ([]domain.CanDoStatement, int) {
	statements := make([]domain.CanDoStatement, 0, len(seeds))
	skipped := 0
	order := 0
	for i, seed := range seeds {
		level := domain.NormalizeLevel(seed.Level)
		if !domain.IsValidLevel(level) {
			log.Warn("Skipping statement with unknown level",
				zap.Int("index", i),
				zap.String("level", seed.Level))
			skipped++
			continue
		}
		order++
		// Descriptor ids come from the table's uuid default on insert.
		statements = append(statements, domain.CanDoStatement{
			Level:        level,
			SkillType:    seed.SkillType,
			Mode:         seed.Mode,
			Activity:     seed.Activity,
			Scale:        seed.Scale,
			Descriptor:   seed.Descriptor,
			Keywords:     util.ExtractKeywords(seed.Descriptor),
			DisplayOrder: order,
		})
	}
	return statements, skipped
}

func main() {
	seedPath := flag.String("file", "configs/seed_data/cefr_statements_filtered.json", "path to the filtered CEFR descriptor export")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting Can-Do catalog import", zap.String("path", *seedPath))
	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedPath), zap.Error(err))
	}

	var seeds []seedStatement
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatal("Failed to parse seed file", zap.Error(err))
	}
	if len(seeds) == 0 {
		log.Fatal("Seed file contains no statements")
	}

	statements, skipped := buildStatements(seeds, log)

	client := supabase.NewClient(cfg.Supabase)
	candoRepo := supabase.NewCanDoRepository(client)

	inserted := 0
	for start := 0; start < len(statements); start += batchSize {
		end := start + batchSize
		if end > len(statements) {
			end = len(statements)
		}
		if err := candoRepo.InsertBatch(ctx, statements[start:end]); err != nil {
			log.Fatal("Failed to insert batch",
				zap.Int("from", start),
				zap.Int("to", end),
				zap.Error(err))
		}
		inserted += end - start
		log.Info("Inserted batch", zap.Int("total_so_far", inserted))
	}

	log.Info("Can-Do catalog import finished",
		zap.Int("inserted", inserted),
		zap.Int("skipped", skipped))
}
