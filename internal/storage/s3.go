// Package storage issues presigned upload URLs against an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"photoai/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
)

const ZipContentType = "application/zip"

// PresignedUpload is a time-boxed PUT target for a training archive.
type PresignedUpload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// S3Presigner signs PUT requests for training zips.
type S3Presigner struct {
	presign   func(ctx context.Context, in *s3.PutObjectInput, ttl time.Duration) (string, error)
	bucket    string
	publicURL string
	ttl       time.Duration
	now       func() time.Time
}

// NewS3Presigner builds the client the same way for AWS, R2 and local S3
// emulators: static credentials, custom endpoint, path-style addressing.
func NewS3Presigner(ctx context.Context, cfg *config.Config) (*S3Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	presignClient := s3.NewPresignClient(client)

	ttl := cfg.UploadURLTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &S3Presigner{
		presign: func(ctx context.Context, in *s3.PutObjectInput, ttl time.Duration) (string, error) {
			req, err := presignClient.PresignPutObject(ctx, in, s3.WithPresignExpires(ttl))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// PresignZipUpload returns a PUT URL for models/<unixMillis>_<random>.zip.
func (p *S3Presigner) PresignZipUpload(ctx context.Context) (*PresignedUpload, error) {
	now := p.now()
	key := ZipKey(now)
	url, err := p.presign(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(ZipContentType),
	}, p.ttl)
	if err != nil {
		return nil, fmt.Errorf("presign upload %s: %w", key, err)
	}
	out := &PresignedUpload{URL: url, Key: key, ExpiresAt: now.Add(p.ttl)}
	if p.publicURL != "" {
		out.PublicURL = p.publicURL + "/" + key
	}
	return out, nil
}

// ZipKey builds the object key for a training archive.
func ZipKey(now time.Time) string {
	return "models/" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + strconv.FormatUint(rand.Uint64(), 36) + ".zip"
}

// removeDisableGzip works around signature mismatches on some S3-compatible services.
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
