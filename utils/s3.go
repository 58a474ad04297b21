package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectPutter is the part of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageUploader stores recipe images in a bucket served through CloudFront.
type ImageUploader struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewImageUploader(client ObjectPutter, bucket, baseURL string) *ImageUploader {
	return &ImageUploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// NewS3ImageUploader loads the default AWS credential chain for region.
func NewS3ImageUploader(ctx context.Context, region, bucket, baseURL string) (*ImageUploader, error) {
	if region == "" {
		region = os.Getenv("AWS_REGION") // fallback
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return NewImageUploader(s3.NewFromConfig(cfg), bucket, baseURL), nil
}

// Resolve turns a seed image reference into a public URL. http(s) URLs are
// returned unchanged; data URLs and local file paths are uploaded.
func (u *ImageUploader) Resolve(ctx context.Context, ref, name string) (string, error) {
	switch {
	case ref == "":
		return "", nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref, nil
	case strings.HasPrefix(ref, "data:"):
		data, contentType, err := DecodeDataURL(ref)
		if err != nil {
			return "", err
		}
		return u.Upload(ctx, name, data, contentType)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", ref, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(ref))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return u.Upload(ctx, name, data, contentType)
}

// Upload puts data under recipe-images/ and returns its public URL.
func (u *ImageUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipe-images/%s-%d%s", Slug(name), u.now().UnixNano(), extensionFor(contentType))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}

// DecodeDataURL splits "data:<mime>;base64,<data>" into bytes and mime type.
func DecodeDataURL(s string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("invalid base64 image")
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return data, contentType, nil
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

// Slug lowercases s and keeps letters and digits, joining runs of anything
// else with a single dash.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
