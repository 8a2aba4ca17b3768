// Package services holds external-service clients shared by commands.
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveService uploads transcript and backup artifacts to a
// Spaces (S3-compatible) bucket and hands back their public URLs.
type ArchiveService struct {
	client *s3.Client
	bucket string
	region string
	root   string
}

func NewArchiveService(key, secret, region, bucket, root string) (*ArchiveService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Spaces config: %w", err)
	}

	return &ArchiveService{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		root:   strings.Trim(root, "/"),
	}, nil
}

// UploadTranscript stores a channel transcript and returns its URL.
func (s *ArchiveService) UploadTranscript(ctx context.Context, guildID, channelID string, data []byte) (string, error) {
	key := s.objectKey("transcripts", fmt.Sprintf("%s-%s-%d.txt", guildID, channelID, time.Now().Unix()))
	return s.upload(ctx, key, "text/plain; charset=utf-8", data)
}

// UploadBackup stores a guild backup snapshot and returns its URL.
func (s *ArchiveService) UploadBackup(ctx context.Context, guildID string, data []byte) (string, error) {
	key := s.objectKey("backups", fmt.Sprintf("%s-%d.json", guildID, time.Now().Unix()))
	return s.upload(ctx, key, "application/json", data)
}

func (s *ArchiveService) objectKey(kind, name string) string {
	if s.root == "" {
		return fmt.Sprintf("%s/%s", kind, name)
	}
	return fmt.Sprintf("%s/%s/%s", s.root, kind, name)
}

func (s *ArchiveService) upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
		ACL:         "public-read",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive object: %w", err)
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key), nil
}
