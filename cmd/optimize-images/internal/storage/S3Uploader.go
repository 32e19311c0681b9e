package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	uploadableExtensions = []string{".jpg", ".jpeg"}
)

type S3UploaderConfig struct {
	AwsBucket string
	AwsRegion string
	S3Client  s3.S3Client
}

/*
S3Uploader publishes optimized images to a bucket, skipping any object whose
remote copy is at least as new as the local file.
*/
type S3Uploader struct {
	awsBucket string
	awsRegion string
	s3Client  s3.S3Client

	mu     *sync.RWMutex
	remote map[string]time.Time
}

func NewS3Uploader(config S3UploaderConfig) S3Uploader {
	return S3Uploader{
		awsBucket: config.AwsBucket,
		awsRegion: config.AwsRegion,
		s3Client:  config.S3Client,
		mu:        &sync.RWMutex{},
		remote:    map[string]time.Time{},
	}
}

/*
Prepare makes sure the bucket exists and records the modification time of
every image already stored under prefix.
*/
func (u S3Uploader) Prepare(prefix string) error {
	var (
		err      error
		response s3.ListResponse
	)

	if err = u.ensureBucketExists(u.awsBucket); err != nil {
		return err
	}

	response, err = u.s3Client.List(
		u.awsBucket,
		prefix,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			ext := strings.ToLower(filepath.Ext(aws.ToString(obj.Key)))
			return slices.IsInSlice(ext, uploadableExtensions)
		}),
	)

	if err != nil {
		return fmt.Errorf("error listing existing images under '%s': %w", prefix, err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for _, obj := range response.Objects {
		u.remote[obj.Key] = obj.LastModified
	}

	slog.Info("existing images listed", "bucket", u.awsBucket, "prefix", prefix, "numImages", len(response.Objects))
	return nil
}

func (u S3Uploader) Upload(ctx context.Context, key, file string) error {
	var (
		err  error
		info os.FileInfo
		f    *os.File
	)

	if err = ctx.Err(); err != nil {
		return err
	}

	if info, err = os.Stat(file); err != nil {
		return fmt.Errorf("error reading '%s': %w", file, err)
	}

	u.mu.RLock()
	remoteModified, ok := u.remote[key]
	u.mu.RUnlock()

	if ok && !remoteModified.Before(info.ModTime()) {
		slog.Debug("remote image is current, skipping upload", "key", key)
		return nil
	}

	if f, err = os.Open(file); err != nil {
		return fmt.Errorf("error opening '%s': %w", file, err)
	}

	defer f.Close()

	if _, err = u.s3Client.Put(u.awsBucket, key, f); err != nil {
		return fmt.Errorf("error uploading '%s' to bucket '%s': %w", key, u.awsBucket, err)
	}

	u.mu.Lock()
	u.remote[key] = time.Now()
	u.mu.Unlock()

	slog.Info("uploaded image", "bucket", u.awsBucket, "key", key)
	return nil
}

func (u S3Uploader) ensureBucketExists(bucketName string) error {
	var (
		err    error
		exists bool
	)

	exists, err = u.s3Client.BucketExists(bucketName)

	if err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", bucketName, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", bucketName)

	err = u.s3Client.CreateBucket(
		bucketName,
		createbucketoptions.WithRegion(u.awsRegion),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
	}

	return nil
}
