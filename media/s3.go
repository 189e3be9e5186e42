package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Uploader stores images in a bucket. The public id is the object key.
type S3Uploader struct {
	client  s3API
	bucket  string
	prefix  string
	baseURL string
}

// NewS3Uploader serves objects from the CloudFront domain when one is configured,
// otherwise from the path-style bucket URL under endpoint.
func NewS3Uploader(client s3API, bucket, prefix, endpoint, region, cloudfrontDomain string) *S3Uploader {
	var base string
	switch {
	case cloudfrontDomain != "":
		base = "https://" + strings.TrimSuffix(strings.TrimPrefix(cloudfrontDomain, "https://"), "/")
	case endpoint != "":
		base = strings.TrimSuffix(endpoint, "/") + "/" + bucket
	default:
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix, baseURL: base}
}

func (u *S3Uploader) Upload(ctx context.Context, file File) (*Asset, error) {
	key := path.Join(u.prefix, uuid.NewString()+strings.ToLower(filepath.Ext(file.Filename)))
	input := &s3.PutObjectInput{
		Bucket: sdkaws.String(u.bucket),
		Key:    sdkaws.String(key),
		Body:   file.Body,
	}
	if file.ContentType != "" {
		input.ContentType = sdkaws.String(file.ContentType)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return &Asset{URL: u.baseURL + "/" + key, PublicID: key}, nil
}

func (u *S3Uploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: sdkaws.String(u.bucket),
		Key:    sdkaws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", publicID, err)
	}
	return nil
}

func (u *S3Uploader) PublicIDFromURL(raw string) string {
	if !strings.HasPrefix(raw, u.baseURL+"/") {
		return ""
	}
	key := strings.TrimPrefix(raw, u.baseURL+"/")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	return key
}
