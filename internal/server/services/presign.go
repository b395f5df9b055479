package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/credbridge/internal/server/config"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Presigner issues presigned object URLs against an S3-compatible store
// (MinIO in development) using static root credentials.
type S3Presigner struct {
	region   string
	user     string
	password string
	endpoint string
}

func NewS3Presigner(cfg *sc.Config) *S3Presigner {
	return &S3Presigner{
		region:   cfg.S3Region,
		user:     cfg.S3RootUser,
		password: cfg.S3RootPassword,
		endpoint: cfg.S3BaseEndpoint,
	}
}

func (p *S3Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(p.user, p.password, "")))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.endpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// Presign returns a PUT URL for OperationPush and a GET URL for
// OperationPull, valid for ttl.
func (p *S3Presigner) Presign(ctx context.Context, op models.Operation, bucket, key string, ttl time.Duration) (*models.ObjectGrant, error) {
	pc, err := p.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	expires := time.Now().Add(ttl)

	var req *v4.PresignedHTTPRequest
	switch op {
	case models.OperationPush:
		req, err = presignPutObject(pc, ctx, &s3.PutObjectInput{Bucket: &bucket, Key: &key}, s3.WithPresignExpires(ttl))
	case models.OperationPull:
		req, err = presignGetObject(pc, ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key}, s3.WithPresignExpires(ttl))
	default:
		return nil, fmt.Errorf("presign: unsupported operation %q", op)
	}
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
		if op == models.OperationPush {
			method = http.MethodPut
		}
	}

	return &models.ObjectGrant{Operation: op, Method: method, URL: req.URL, Expires: expires}, nil
}
