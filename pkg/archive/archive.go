// Package archive 把打印出的对账单存入 S3 兼容的对象存储（AWS S3、MinIO 等）
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"namogange/pkg/logger"
)

// ErrNotConfigured 未配置存储桶
var ErrNotConfigured = errors.New("archive: bucket is not configured")

// Config 存储配置
type Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	// LinkExpiry 下载链接有效期
	LinkExpiry time.Duration
}

// Store 对账单存储
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

// New 创建存储，Bucket 为空时返回 ErrNotConfigured
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("archive: access key and secret key are required")
	}
	if cfg.Region == "" {
		cfg.Region = "ap-south-1"
	}
	if cfg.LinkExpiry <= 0 {
		cfg.LinkExpiry = 24 * time.Hour
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimRight(cfg.Endpoint, "/"))
		}
	})

	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		expiry:  cfg.LinkExpiry,
	}, nil
}

// Key 对账单的对象键：<clientID>/<yyyy>/<mm>/active-<yyyymmdd-hhmmss>.<ext>
func Key(clientID string, at time.Time, ext string) string {
	return fmt.Sprintf("%s/%s/active-%s.%s",
		strings.Trim(clientID, "/"), at.Format("2006/01"), at.Format("20060102-150405"), ext)
}

// Put 上传并返回限时下载链接
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("archive: put %s: %w", key, err)
	}
	logger.InfoString("Archive", "Put", fmt.Sprintf("%s/%s (%d bytes)", s.bucket, key, len(data)))

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("archive: presign %s: %w", key, err)
	}
	return req.URL, nil
}
