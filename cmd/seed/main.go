// Command seed loads a recipe catalog into the database.
//
//	go run ./cmd/seed -file data/recipes.yml
//
// Local image paths and data URLs are uploaded to S3_BUCKET when it is set.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/UFAZ-L2-CS1/DADLY/config"
	"github.com/UFAZ-L2-CS1/DADLY/internal/seed"
	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
	"github.com/UFAZ-L2-CS1/DADLY/services"
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

func main() {
	file := flag.String("file", "data/recipes.yml", "recipe catalog to load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: "console"})

	recipes, err := seed.ReadFile(*file)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *file).Msg("reading catalog")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var images services.ImageResolver
	if cfg.S3.Bucket != "" {
		uploader, err := utils.NewS3ImageUploader(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.CloudFrontURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("s3")
		}
		images = uploader
	}

	report, err := services.NewRecipeService(repository.New(db)).Seed(ctx, recipes, images)
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding")
	}
	logging.Info().Int("created", report.Created).Int("skipped", report.Skipped).Msg("done")
}
