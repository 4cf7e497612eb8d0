// Package storage reads and writes objects in S3.
package storage

import (
	"bytes"
	"context"
	"io"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// ErrInvalidUTF8 is returned when an object is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("object content is not valid UTF-8")

// API is the subset of the S3 client used by Store.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ API = (*s3.Client)(nil)

// Store reads and writes objects through an S3 client.
type Store struct {
	api API
}

// New creates a Store.
func New(api API) *Store {
	return &Store{api: api}
}

// Open returns the body of an object. The caller must close it.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}

// Put writes body to an object, replacing any existing one.
func (s *Store) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to put s3://%s/%s", bucket, key)
	}
	return nil
}

// ReadText reads r to the end and decodes it as UTF-8.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to read object content")
	}
	if !utf8.Valid(data) {
		return "", errors.WithStack(ErrInvalidUTF8)
	}
	return string(data), nil
}
