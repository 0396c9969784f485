// Package publish uploads generated sites to S3-compatible storage and hands
// back a time-limited link to them.
package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/google/uuid"
)

const (
	contentType    = "text/html; charset=utf-8"
	defaultRegion  = "us-east-1"
	defaultLinkTTL = 24 * time.Hour
)

// ErrDisabled is returned by New when no bucket is configured.
var ErrDisabled = errors.New("publishing is not configured")

var ErrNothingToPublish = errors.New("nothing to publish")

// test seams
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig
)

type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type URLPresigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Options struct {
	BaseEndpoint string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	LinkTTL      time.Duration
}

type Publisher struct {
	putter    ObjectPutter
	presigner URLPresigner
	bucket    string
	ttl       time.Duration
	logger    logging.Logger

	now   func() time.Time
	newID func() string
}

// New builds a Publisher from opts. Without static keys the default AWS
// credential chain is used. A custom endpoint switches to path-style
// addressing, which MinIO and most S3 clones expect.
func New(ctx context.Context, opts Options, logger logging.Logger) (*Publisher, error) {
	if opts.Bucket == "" {
		return nil, ErrDisabled
	}
	if opts.Region == "" {
		opts.Region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClients(client, s3.NewPresignClient(client), opts, logger), nil
}

// NewWithClients wires a Publisher over existing S3 clients.
func NewWithClients(putter ObjectPutter, presigner URLPresigner, opts Options, logger logging.Logger) *Publisher {
	if opts.LinkTTL <= 0 {
		opts.LinkTTL = defaultLinkTTL
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Publisher{
		putter:    putter,
		presigner: presigner,
		bucket:    opts.Bucket,
		ttl:       opts.LinkTTL,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ObjectKey is where a site for userID uploaded at t is stored.
func ObjectKey(userID int64, t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("sites/%d/%04d/%02d/%02d/%s.html", userID, t.Year(), int(t.Month()), t.Day(), id)
}

// Publish uploads a and returns a presigned GET link valid for the
// configured TTL.
func (p *Publisher) Publish(ctx context.Context, userID int64, a *models.Artifact) (string, error) {
	if a == nil || a.HTML == "" {
		return "", ErrNothingToPublish
	}

	key := ObjectKey(userID, p.now(), p.newID())

	_, err := p.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(a.HTML),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	p.logger.Info(ctx, "site published", "user_id", userID, "key", key, "ttl", p.ttl)
	return req.URL, nil
}

func (p *Publisher) LinkTTL() time.Duration { return p.ttl }
