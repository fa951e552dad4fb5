package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store uploads images to a bucket. Credentials and region come from the default AWS chain.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

func NewS3Store(ctx context.Context, bucket, publicURL string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	extension, err := CheckImage(file)
	if err != nil {
		return "", err
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := path.Join("properties", newFilename(extension))
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(allowedExtensions[extension]),
	})
	if err != nil {
		return "", err
	}
	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return result.Location, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key := s.keyFor(ref)
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) keyFor(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if s.publicURL != "" && strings.HasPrefix(ref, s.publicURL+"/") {
		return strings.TrimPrefix(ref, s.publicURL+"/")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
