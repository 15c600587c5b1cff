package media

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/folioworks/core/internal/config"
	"github.com/google/uuid"
)

const presignTTL = 15 * time.Minute

// S3Store talks to any S3-compatible media host.
type S3Store struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	region     string
	endpoint   string
	publicBase string
	prefix     string
	pathStyle  bool
}

// NewS3Store builds a store from media configuration.
func NewS3Store(cfg config.MediaConfig) (*S3Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	region := strings.TrimSpace(cfg.Region)
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete media config: bucket/region/access_key_id/secret_access_key are required")
	}

	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: cfg.PathStyleAccess,
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		endpoint = strings.TrimSuffix(endpoint, "/")
		opts.BaseEndpoint = aws.String(endpoint)
	}

	client := s3.New(opts)
	return &S3Store{
		client: client,
		presigner: s3.NewPresignClient(client, func(po *s3.PresignOptions) {
			po.Expires = presignTTL
		}),
		bucket:     bucket,
		region:     region,
		endpoint:   endpoint,
		publicBase: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		prefix:     strings.Trim(strings.TrimSpace(cfg.UploadPrefix), "/"),
		pathStyle:  cfg.PathStyleAccess,
	}, nil
}

// Upload stores payload under a collision-resistant key and returns the asset.
func (s *S3Store) Upload(ctx context.Context, name string, payload []byte, contentType string) (Asset, error) {
	key := s.buildObjectKey(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("media upload: %w", err)
	}
	return Asset{URL: s.publicURL(key), PublicID: key}, nil
}

// Delete removes the object behind publicID.
func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return fmt.Errorf("media delete: empty public id")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("media delete %s: %w", publicID, err)
	}
	return nil
}

// PresignUpload issues a short-lived PUT credential for direct client upload.
func (s *S3Store) PresignUpload(ctx context.Context, name string, contentType string) (SignedUpload, error) {
	key := s.buildObjectKey(name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s.presigner.PresignPutObject(ctx, input)
	if err != nil {
		return SignedUpload{}, fmt.Errorf("presign upload: %w", err)
	}

	headers := make(map[string]string, len(req.SignedHeader))
	for k, v := range req.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return SignedUpload{
		UploadURL: req.URL,
		Method:    req.Method,
		Headers:   headers,
		PublicID:  key,
		PublicURL: s.publicURL(key),
		ExpiresAt: time.Now().Add(presignTTL),
	}, nil
}

// List returns the public ids of every stored object under the upload prefix.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix + "/")
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("media list: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// buildObjectKey generates a collision-resistant key preserving the original
// extension, under the configured upload prefix.
func (s *S3Store) buildObjectKey(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3Store) publicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	if s.endpoint != "" {
		if s.pathStyle {
			return s.endpoint + "/" + s.bucket + "/" + key
		}
		return strings.Replace(s.endpoint, "://", "://"+s.bucket+".", 1) + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
