package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"salon/config"
	"salon/infras/otel"
	"salon/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 stores public objects such as master photos in the configured bucket.
type S3 interface {
	Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
	ObjectKey(url string) string
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	bucket := svc.Config.External.S3.BucketName
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	buf := bytes.NewBuffer(nil)
	if _, err = buf.ReadFrom(body); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	reader := bytes.NewReader(buf.Bytes())

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(objectKey), nil
}

// Delete removes the object behind a URL previously returned by Upload. Foreign URLs are ignored.
func (svc *s3Impl) Delete(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	objectKey := svc.ObjectKey(url)
	if objectKey == constant.Empty {
		return nil
	}

	bucket := svc.Config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectKey maps a public or API URL back to its object key, or "" when it points elsewhere.
func (svc *s3Impl) ObjectKey(url string) string {
	s3Config := svc.Config.External.S3

	prefixes := []string{
		strings.TrimSuffix(s3Config.PublicDomain, "/") + "/",
		fmt.Sprintf("%s/%s/", strings.TrimSuffix(s3Config.APIEndpoint, "/"), s3Config.BucketName),
	}

	for _, prefix := range prefixes {
		if prefix != "/" && strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(objectKey string) string {
	return strings.TrimSuffix(svc.Config.External.S3.PublicDomain, "/") + "/" + objectKey
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Config := config.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Config.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	log.Info().Str("bucket", s3Config.BucketName).Msg("S3 client initialized")

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
