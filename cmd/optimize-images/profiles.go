package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/unitedhandsbd/website/pkg/models"
)

func profileByName(name string) (models.ImageProfile, error) {
	switch strings.ToLower(name) {
	case models.GalleryImageProfile.Name:
		return models.GalleryImageProfile, nil
	case models.TeamImageProfile.Name:
		return models.TeamImageProfile, nil
	default:
		return models.ImageProfile{}, fmt.Errorf("unknown image profile '%s'", name)
	}
}

func setupLogger(level, version string) {
	var (
		handler slog.Handler
	)

	logLevel := slog.LevelInfo

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	options := &slog.HandlerOptions{Level: logLevel}

	if version == "development" {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}

	slog.SetDefault(slog.New(handler).With("app", appName, "version", version))
}
