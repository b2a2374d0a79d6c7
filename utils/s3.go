package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrInvalidPhoto marks a data URI that is not a base64 encoded image.
var ErrInvalidPhoto = errors.New("invalid photo")

// PhotoUploader stores a user photo sent as a data URI and returns its public
// URL. Remove deletes an object previously returned by Upload.
type PhotoUploader interface {
	Upload(ctx context.Context, dataURI, keyPrefix string) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

// S3API is the subset of the S3 client used for photos.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3PhotoUploader struct {
	client        S3API
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

func NewS3PhotoUploader(client S3API, bucket, publicBaseURL string) *S3PhotoUploader {
	return &S3PhotoUploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// NewS3PhotoUploaderFromEnv loads the default AWS credential chain for region.
func NewS3PhotoUploaderFromEnv(ctx context.Context, region, bucket, publicBaseURL string) (*S3PhotoUploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3PhotoUploader(s3.NewFromConfig(cfg), bucket, publicBaseURL), nil
}

// IsDataURI reports whether s looks like "data:<mime>;base64,<payload>".
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:") && strings.Contains(s, ";base64,")
}

func (u *S3PhotoUploader) Upload(ctx context.Context, dataURI, keyPrefix string) (string, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profile-pictures/%s-%d%s", keyPrefix, u.now().UnixNano(), extensionFor(contentType))

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", u.publicBaseURL, key), nil
}

func (u *S3PhotoUploader) Remove(ctx context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, u.publicBaseURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("url %q is not under %s", publicURL, u.publicBaseURL)
	}
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func decodeDataURI(dataURI string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return "", nil, fmt.Errorf("%w: not a data uri", ErrInvalidPhoto)
	}
	mediaType := strings.TrimPrefix(meta, "data:")   // "image/jpeg;base64"
	contentType, _, _ := strings.Cut(mediaType, ";") // "image/jpeg"
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidPhoto, contentType)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: bad base64 payload: %v", ErrInvalidPhoto, err)
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok {
		return "." + sub
	}
	return ""
}
