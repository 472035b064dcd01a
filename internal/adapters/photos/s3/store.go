// Package s3 sube las fotos a un bucket S3 (o compatible).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// PutObjectAPI es la parte del cliente S3 que usa Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Options struct {
	Bucket    string
	Region    string
	Endpoint  string // vacío = AWS; si no, path-style (MinIO, localstack)
	AccessKey string
	SecretKey string
	// BaseURL sobreescribe la URL pública (CDN).
	BaseURL string
	Tracing bool
}

type Store struct {
	client  PutObjectAPI
	opts    Options
	baseURL string
}

// New arma el cliente desde la cadena de credenciales por defecto, o con claves estáticas si vienen.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, opts), nil
}

func NewWithClient(client PutObjectAPI, opts Options) *Store {
	return &Store{client: client, opts: opts, baseURL: publicBase(opts)}
}

func publicBase(opts Options) string {
	switch {
	case opts.BaseURL != "":
		return strings.TrimRight(opts.BaseURL, "/")
	case opts.Endpoint != "":
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
}

func (s *Store) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	key := strings.TrimLeft(path, "/")
	put := func(ctx context.Context) error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.opts.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(data))),
		})
		return err
	}

	var err error
	if s.opts.Tracing {
		err = xray.Capture(ctx, "S3.PutObject", put)
	} else {
		err = put(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *Store) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}
