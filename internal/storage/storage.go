package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flashdeals/internal/config"
	appErrors "flashdeals/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Kind says what an uploaded object will be referenced as
type Kind string

const (
	KindOfferImage       Kind = "offer_image"
	KindStoreLogo        Kind = "store_logo"
	KindProfileImage     Kind = "profile_image"
	KindIDDocument       Kind = "id_document"
	KindTicketAttachment Kind = "ticket_attachment"
)

var ErrUnknownKind = appErrors.NewAppError(appErrors.CodeValidation,
	"kind must be one of: offer_image, store_logo, profile_image, id_document, ticket_attachment", nil)

func (k Kind) Valid() bool {
	switch k {
	case KindOfferImage, KindStoreLogo, KindProfileImage, KindIDDocument, KindTicketAttachment:
		return true
	}
	return false
}

// Upload is a presigned PUT target. Reference is what clients attach to offers, stores and tickets.
type Upload struct {
	URL       string
	Reference string
	ExpiresAt time.Time
}

// Presigner hands out upload targets
type Presigner interface {
	PresignUpload(ctx context.Context, kind Kind, contentType string) (*Upload, error)
}

type putObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Presigner struct {
	client putObjectPresigner
	bucket string
	expiry time.Duration
	now    func() time.Time
}

// NewS3Presigner builds a presigner for an S3 compatible endpoint (MinIO in local setups)
func NewS3Presigner(ctx context.Context, cfg config.StorageConfig) (*S3Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return newS3Presigner(s3.NewPresignClient(client), cfg.Bucket, cfg.PresignExpiry()), nil
}

func newS3Presigner(client putObjectPresigner, bucket string, expiry time.Duration) *S3Presigner {
	return &S3Presigner{
		client: client,
		bucket: bucket,
		expiry: expiry,
		now:    time.Now,
	}
}

func (p *S3Presigner) PresignUpload(ctx context.Context, kind Kind, contentType string) (*Upload, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	now := p.now()
	key := ObjectKey(kind, now)

	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}
	if ct := strings.TrimSpace(contentType); ct != "" {
		input.ContentType = aws.String(ct)
	}

	req, err := p.client.PresignPutObject(ctx, input, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &Upload{
		URL:       req.URL,
		Reference: key,
		ExpiresAt: now.Add(p.expiry),
	}, nil
}

// ObjectKey lays objects out as <kind>/yyyy/mm/dd/<uuid>
func ObjectKey(kind Kind, at time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s", kind, at.Year(), int(at.Month()), at.Day(), uuid.New())
}
