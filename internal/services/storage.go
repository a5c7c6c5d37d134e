package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StoredFile describes a saved upload. Location is what Read and Delete take.
type StoredFile struct {
	Filename    string
	Location    string
	ContentType string
	Size        int64
}

type StorageService interface {
	SaveFile(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error)
	ReadFile(ctx context.Context, location string) ([]byte, error)
	DeleteFile(ctx context.Context, location string) error
}

type StorageConfig struct {
	Driver     string
	UploadPath string
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
}

// NewStorageService picks the local or S3 driver.
func NewStorageService(ctx context.Context, cfg StorageConfig) (StorageService, error) {
	switch cfg.Driver {
	case "", "local":
		s := &localStorage{uploadPath: cfg.UploadPath}
		if err := s.ensureUploadDir(); err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		return newS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func uniqueName(originalName string) (string, string, error) {
	contentType, err := ContentTypeFor(originalName)
	if err != nil {
		return "", "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("cv_%s%s", uuid.New().String(), ext), contentType, nil
}

type localStorage struct {
	uploadPath string
}

func (s *localStorage) ensureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *localStorage) SaveFile(_ context.Context, originalName string, r io.Reader) (*StoredFile, error) {
	name, contentType, err := uniqueName(originalName)
	if err != nil {
		return nil, err
	}
	filePath := filepath.Join(s.uploadPath, name)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	size, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{Filename: name, Location: filePath, ContentType: contentType, Size: size}, nil
}

func (s *localStorage) ReadFile(_ context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *localStorage) DeleteFile(_ context.Context, location string) error {
	if err := os.Remove(location); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

type s3Storage struct {
	client *s3.Client
	bucket string
}

func newS3Storage(ctx context.Context, cfg StorageConfig) (*s3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Storage{client: client, bucket: cfg.Bucket}, nil
}

func (s *s3Storage) SaveFile(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error) {
	name, contentType, err := uniqueName(originalName)
	if err != nil {
		return nil, err
	}

	// PutObject needs a seekable body to sign the payload.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	key := "uploads/" + name
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put object: %w", err)
	}

	return &StoredFile{Filename: name, Location: key, ContentType: contentType, Size: int64(len(data))}, nil
}

func (s *s3Storage) ReadFile(ctx context.Context, location string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *s3Storage) DeleteFile(ctx context.Context, location string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
