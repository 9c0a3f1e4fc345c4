package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrStorageNotConfigured = errors.New("object storage not configured")

// ImageService hands out presigned PUT URLs so course images are uploaded
// directly to object storage; only the resulting public URL is stored on
// the course document.
type ImageService interface {
	UploadURL(ctx context.Context, filename string) (uploadURL, publicURL string, err error)
}

type imageService struct {
	presignClient *s3.PresignClient
	bucket        string
	publicBase    string
	logger        zerolog.Logger
}

// NewImageService builds the service. s3Client may be nil when object
// storage is not configured; UploadURL then fails with
// ErrStorageNotConfigured.
func NewImageService(s3Client *s3.Client, bucket, publicBase string, logger zerolog.Logger) ImageService {
	svc := &imageService{
		bucket:     bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
		logger:     logger.With().Str("service", "ImageService").Logger(),
	}
	if s3Client != nil {
		svc.presignClient = s3.NewPresignClient(s3Client)
	}
	return svc
}

func (s *imageService) UploadURL(ctx context.Context, filename string) (string, string, error) {
	if s.presignClient == nil {
		return "", "", ErrStorageNotConfigured
	}

	// Namespace each upload so filenames cannot collide or traverse.
	key := fmt.Sprintf("courses/%s/%s", bson.NewObjectID().Hex(), path.Base(filename))

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to presign upload URL")
		return "", "", fmt.Errorf("presign upload: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, key)
	return req.URL, publicURL, nil
}
