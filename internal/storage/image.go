package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"posgrad/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidImageType is returned when an upload is not an image.
	ErrInvalidImageType = errors.New("file must be an image")

	// ErrImageTooLarge is returned when an upload exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds maximum size")
)

// ObjectPutter is the part of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Upload describes a file received from the admin form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageStore writes course images to a public bucket.
type ImageStore struct {
	client    ObjectPutter
	bucket    string
	prefix    string
	publicURL string
	maxBytes  int64
	now       func() time.Time
	logger    zerolog.Logger
}

// NewImageStore creates an ImageStore. publicURL is the base under which
// objects in bucket are served.
func NewImageStore(client ObjectPutter, bucket, prefix, publicURL string, maxBytes int64, logger zerolog.Logger) *ImageStore {
	return &ImageStore{
		client:    client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
		logger:    logger.With().Str("component", "ImageStore").Logger(),
	}
}

// Put validates and uploads an image, returning its public URL.
func (s *ImageStore) Put(ctx context.Context, up Upload) (string, error) {
	if up.ContentType != "" && !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrInvalidImageType
	}

	// read one byte past the limit to detect oversized bodies
	data, err := io.ReadAll(io.LimitReader(up.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrInvalidImageType
	}

	key := s.objectKey(up.Filename, mt)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(mt.String()),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image %s: %w", key, err)
	}

	s.logger.Info().Str("key", key).Int("bytes", len(data)).Msg("Image uploaded")
	return s.publicURL + "/" + key, nil
}

var safeExt = regexp.MustCompile(`^[a-z0-9]{1,8}$`)

// objectKey builds "{prefix}/{random}-{unixmillis}.{ext}". The extension of
// the original filename wins over the sniffed one when it is short and
// alphanumeric.
func (s *ImageStore) objectKey(filename string, mt *mimetype.MIME) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if !safeExt.MatchString(ext) {
		ext = strings.TrimPrefix(mt.Extension(), ".")
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name := fmt.Sprintf("%s-%d.%s", random, s.now().UnixMilli(), ext)
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// NewS3Client builds a path-style client for the Supabase S3 endpoint.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	s3Config, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("loading S3 config: %w", err)
	}
	return s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	}), nil
}

// removeDisableGzip works around S3 signature errors on Supabase storage.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
