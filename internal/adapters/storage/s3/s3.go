package s3

import (
	"context"
	"errors"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Adapter is an adapter for S3 compatible object stores
type Adapter struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*Adapter, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	} else {
		logger.Warn("s3 client using default credential chain")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Adapter{client: client, bucket: cfg.BucketName, logger: logger}, nil
}

// Stat retrieves obj info with a HEAD request
func (a *Adapter) Stat(ctx context.Context, path string) (*domain.ObjectInfo, error) {
	out, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, a.mapError(path, err)
	}
	return &domain.ObjectInfo{
		Path:        path,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
	}, nil
}

// Open retrieves an obj, or the requested part of it. Caller must close the body.
func (a *Adapter) Open(ctx context.Context, path string, byteRange *domain.ByteRange) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	}
	if byteRange != nil {
		input.Range = aws.String(fmt.Sprintf("bytes=%d-%d", byteRange.Start, byteRange.End))
	}

	out, err := a.client.GetObject(ctx, input)
	if err != nil {
		return nil, a.mapError(path, err)
	}
	return out.Body, nil
}

// Put stores an object
func (a *Adapter) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(path),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return a.mapError(path, err)
	}
	return nil
}

func (a *Adapter) mapError(path string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", domain.ErrObjectNotFound, path)
		case "InvalidRange":
			return fmt.Errorf("%w: %s", domain.ErrInvalidRange, path)
		}
	}
	// HEAD responses carry no body, so a 404 may surface without an error code
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrObjectNotFound, path)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Error("s3 request failed", slog.String("path", path), slog.String("error", err.Error()))
	return fmt.Errorf("%w: s3 %s: %w", domain.ErrUnavailable, path, err)
}
