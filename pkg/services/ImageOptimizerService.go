package services

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/adampresley/adamgokit/slices"
	"github.com/alitto/pond/v2"
	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"github.com/unitedhandsbd/website/pkg/models"
)

const OptimizedDirName = "optimized"

var (
	optimizableExtensions = []string{".jpg", ".jpeg", ".png"}
)

/*
ImageUploader publishes a finished image file under key. Implementations may
skip files whose remote copy is already current.
*/
type ImageUploader interface {
	Upload(ctx context.Context, key, file string) error
}

type ImageOptimizerServicer interface {
	OptimizeDirectory(ctx context.Context, dir string, profile models.ImageProfile) (models.OptimizeSummary, error)
	CreateVariants(ctx context.Context, dir string, variants []models.ImageVariant) (models.OptimizeSummary, error)
}

type ImageOptimizerServiceConfig struct {
	MaxWorkers   int
	Uploader     ImageUploader
	UploadPrefix string
}

type ImageOptimizerService struct {
	maxWorkers   int
	uploader     ImageUploader
	uploadPrefix string
}

type optimizeJob struct {
	source  string
	output  string
	width   uint
	height  uint
	quality int
	key     string
}

func NewImageOptimizerService(config ImageOptimizerServiceConfig) ImageOptimizerService {
	result := ImageOptimizerService{
		maxWorkers:   config.MaxWorkers,
		uploader:     config.Uploader,
		uploadPrefix: config.UploadPrefix,
	}

	if result.maxWorkers <= 0 {
		result.maxWorkers = runtime.NumCPU()
	}

	return result
}

/*
OptimizeDirectory fits every JPEG and PNG in dir inside the profile bounds and
writes it as a JPEG to dir/optimized. Files that fail are logged and listed
in the summary.
*/
func (s ImageOptimizerService) OptimizeDirectory(ctx context.Context, dir string, profile models.ImageProfile) (models.OptimizeSummary, error) {
	var (
		err     error
		sources []string
	)

	summary := models.OptimizeSummary{Profile: profile.Name}

	if sources, err = listImages(dir, nil); err != nil {
		return summary, err
	}

	outputDir := filepath.Join(dir, OptimizedDirName)

	if err = os.MkdirAll(outputDir, 0o755); err != nil {
		return summary, fmt.Errorf("error creating output directory '%s': %w", outputDir, err)
	}

	slog.Info("optimizing images", "profile", profile.Name, "dir", dir, "images", len(sources))

	jobs := make([]optimizeJob, 0, len(sources))

	for _, source := range sources {
		name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".jpg"

		jobs = append(jobs, optimizeJob{
			source:  source,
			output:  filepath.Join(outputDir, name),
			width:   profile.MaxWidth,
			height:  profile.MaxHeight,
			quality: profile.Quality,
			key:     path.Join(s.uploadPrefix, profile.Name, name),
		})
	}

	return s.run(ctx, summary, jobs), nil
}

/*
CreateVariants writes a width-bounded copy of every optimized JPEG in dir for
each variant. Images that are already variants are left alone.
*/
func (s ImageOptimizerService) CreateVariants(ctx context.Context, dir string, variants []models.ImageVariant) (models.OptimizeSummary, error) {
	var (
		err     error
		sources []string
	)

	summary := models.OptimizeSummary{Profile: "variants"}
	suffixes := make([]string, 0, len(variants))

	for _, v := range variants {
		suffixes = append(suffixes, v.Suffix)
	}

	if sources, err = listImages(dir, suffixes); err != nil {
		return summary, err
	}

	jobs := []optimizeJob{}

	for _, source := range sources {
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

		for _, v := range variants {
			name := base + v.Suffix + ".jpg"

			jobs = append(jobs, optimizeJob{
				source:  source,
				output:  filepath.Join(dir, name),
				width:   v.Width,
				quality: v.Quality,
				key:     path.Join(s.uploadPrefix, "variants", name),
			})
		}
	}

	slog.Info("creating image variants", "dir", dir, "images", len(sources), "variants", len(variants))
	return s.run(ctx, summary, jobs), nil
}

func (s ImageOptimizerService) run(ctx context.Context, summary models.OptimizeSummary, jobs []optimizeJob) models.OptimizeSummary {
	var (
		mu sync.Mutex
	)

	pool := pond.NewPool(s.maxWorkers, pond.WithContext(ctx))

	for _, job := range jobs {
		pool.Submit(func() {
			result, err := s.optimize(job)

			if err == nil && s.uploader != nil {
				if err = s.uploader.Upload(ctx, job.key, job.output); err != nil {
					err = fmt.Errorf("error uploading '%s': %w", job.key, err)
				}
			}

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				slog.Error("error optimizing image", "source", job.source, "output", job.output, "error", err)
				summary.Failed = append(summary.Failed, filepath.Base(job.output))
				return
			}

			summary.Images = append(summary.Images, result)
			summary.OriginalBytes += result.OriginalSize
			summary.OptimizedBytes += result.OptimizedSize
		})
	}

	_ = pool.Stop().Wait()

	sort.Slice(summary.Images, func(i, j int) bool {
		return summary.Images[i].Output < summary.Images[j].Output
	})

	sort.Strings(summary.Failed)

	slog.Info("image optimization finished",
		"profile", summary.Profile,
		"images", len(summary.Images),
		"failed", len(summary.Failed),
		"original", humanize.Bytes(uint64(summary.OriginalBytes)),
		"optimized", humanize.Bytes(uint64(summary.OptimizedBytes)),
		"savings", fmt.Sprintf("%.1f%%", summary.SavingsPercent()),
	)

	return summary
}

func (s ImageOptimizerService) optimize(job optimizeJob) (models.OptimizedImage, error) {
	var (
		err      error
		src      *os.File
		dest     *os.File
		img      image.Image
		srcInfo  os.FileInfo
		destInfo os.FileInfo
	)

	result := models.OptimizedImage{Source: job.source, Output: job.output}

	if src, err = os.Open(job.source); err != nil {
		return result, fmt.Errorf("error opening image: %w", err)
	}

	defer src.Close()

	if srcInfo, err = src.Stat(); err != nil {
		return result, fmt.Errorf("error reading image info: %w", err)
	}

	if img, _, err = image.Decode(src); err != nil {
		return result, fmt.Errorf("error decoding image: %w", err)
	}

	img = fit(img, job.width, job.height)

	if dest, err = os.Create(job.output); err != nil {
		return result, fmt.Errorf("error creating output file: %w", err)
	}

	defer dest.Close()

	if err = jpeg.Encode(dest, img, &jpeg.Options{Quality: job.quality}); err != nil {
		return result, fmt.Errorf("error encoding jpeg: %w", err)
	}

	if destInfo, err = dest.Stat(); err != nil {
		return result, fmt.Errorf("error reading output info: %w", err)
	}

	bounds := img.Bounds()

	result.OriginalSize = srcInfo.Size()
	result.OptimizedSize = destInfo.Size()
	result.Width = bounds.Dx()
	result.Height = bounds.Dy()

	slog.Debug("image optimized",
		"source", filepath.Base(job.source),
		"original", humanize.Bytes(uint64(result.OriginalSize)),
		"optimized", humanize.Bytes(uint64(result.OptimizedSize)),
		"width", result.Width,
		"height", result.Height,
	)

	return result, nil
}

/*
fit shrinks img to lie within maxWidth x maxHeight, keeping its aspect ratio.
A zero maxHeight bounds the width only. Images already inside the bounds are
returned untouched.
*/
func fit(img image.Image, maxWidth, maxHeight uint) image.Image {
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if maxHeight == 0 {
		if width <= maxWidth {
			return img
		}

		return resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}

/*
listImages returns the optimizable files directly inside dir, sorted by
name. Files whose base name ends in one of skipSuffixes are left out.
*/
func listImages(dir string, skipSuffixes []string) ([]string, error) {
	var (
		err     error
		entries []os.DirEntry
	)

	if entries, err = os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("error reading image directory '%s': %w", dir, err)
	}

	result := []string{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))

		if !slices.IsInSlice(ext, optimizableExtensions) {
			continue
		}

		if isVariant(strings.TrimSuffix(name, filepath.Ext(name)), skipSuffixes) {
			continue
		}

		result = append(result, filepath.Join(dir, name))
	}

	sort.Strings(result)
	return result, nil
}

func isVariant(base string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	return false
}
