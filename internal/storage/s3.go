package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

type S3 struct {
	bucket   string
	s3Client *s3.Client
}

func newS3(bucket string, s3Client *s3.Client) *S3 {
	return &S3{
		bucket:   bucket,
		s3Client: s3Client,
	}
}

func (s *S3) Close() error {
	return nil
}

func (s *S3) Open(name string) (File, error) {
	res, err := s.s3Client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return nil, err
	}
	return &s3File{
		key:     name,
		body:    res.Body,
		storage: s,
	}, nil
}

func (s *S3) Create(name string) (File, error) {
	return &s3File{
		key:     name,
		storage: s,
	}, nil
}

func (s *S3) Remove(name string) error {
	_, err := s.s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	return err
}

// s3File buffers writes and uploads the object on Close.
type s3File struct {
	key        string
	body       io.ReadCloser
	buffer     []byte
	hasWritten bool
	storage    *S3
}

func (f *s3File) Read(p []byte) (int, error) {
	if f.body == nil {
		return 0, io.EOF
	}
	return f.body.Read(p)
}

func (f *s3File) Write(p []byte) (int, error) {
	f.hasWritten = true
	f.buffer = append(f.buffer, p...)
	return len(p), nil
}

func (f *s3File) Close() error {
	errGrp := errgroup.Group{}
	if f.body != nil {
		errGrp.Go(func() error {
			return f.body.Close()
		})
	}
	if f.hasWritten {
		errGrp.Go(func() error {
			_, err := f.storage.s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
				Bucket: aws.String(f.storage.bucket),
				Key:    aws.String(f.key),
				Body:   bytes.NewReader(f.buffer),
			})
			return err
		})
	}
	return errGrp.Wait()
}
