package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/unitedhandsbd/website/cmd/optimize-images/internal/configuration"
	"github.com/unitedhandsbd/website/cmd/optimize-images/internal/storage"
	"github.com/unitedhandsbd/website/pkg/models"
	"github.com/unitedhandsbd/website/pkg/services"
)

var (
	Version string = "development"
	appName string = "optimize-images"

	config configuration.Config

	/* Services */
	imageOptimizerService services.ImageOptimizerServicer
	uploader              services.ImageUploader
)

func main() {
	var (
		err     error
		profile models.ImageProfile
		summary models.OptimizeSummary
	)

	config = configuration.LoadConfig()
	setupLogger(config.LogLevel, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("imagesDir", config.ImagesDir),
		slog.String("profile", config.Profile),
		slog.String("mode", config.Mode),
		slog.Int("maxWorkers", config.MaxWorkers),
		slog.String("awsBucket", config.AwsBucket),
	)

	if profile, err = profileByName(config.Profile); err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.AwsBucket != "" {
		uploader = setupUploader()
	}

	imageOptimizerService = services.NewImageOptimizerService(services.ImageOptimizerServiceConfig{
		MaxWorkers:   config.MaxWorkers,
		Uploader:     uploader,
		UploadPrefix: config.UploadPrefix,
	})

	if config.Mode == "optimize" || config.Mode == "all" {
		if summary, err = imageOptimizerService.OptimizeDirectory(ctx, config.ImagesDir, profile); err != nil {
			panic(err)
		}

		logSummary(summary)
	}

	if config.Mode == "variants" || config.Mode == "all" {
		optimizedDir := filepath.Join(config.ImagesDir, services.OptimizedDirName)

		if summary, err = imageOptimizerService.CreateVariants(ctx, optimizedDir, models.ResponsiveImageVariants); err != nil {
			panic(err)
		}

		logSummary(summary)
	}

	slog.Info("done")
}

func setupUploader() services.ImageUploader {
	var (
		err error
	)

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	s3Client, err := s3.NewClient(awsConfig)

	if err != nil {
		panic(err)
	}

	result := storage.NewS3Uploader(storage.S3UploaderConfig{
		AwsBucket: config.AwsBucket,
		AwsRegion: config.AwsRegion,
		S3Client:  s3Client,
	})

	if err = result.Prepare(config.UploadPrefix); err != nil {
		panic(err)
	}

	return result
}

func logSummary(summary models.OptimizeSummary) {
	if len(summary.Failed) > 0 {
		slog.Warn("some images could not be processed", "profile", summary.Profile, "failed", strings.Join(summary.Failed, ","))
	}
}
