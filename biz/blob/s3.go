package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"righttorecord/be/biz/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 keeps chunks as objects prefix/user/session/file. Namespaces are
// implicit in the key space.
type S3 struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	prefix  string
}

func NewS3(ctx context.Context, conf config.S3Conf) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(conf.Region)}
	if conf.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
	})
	return &S3{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  conf.Bucket,
		prefix:  strings.Trim(conf.Prefix, "/"),
	}, nil
}

func (s *S3) key(parts ...string) string {
	if s.prefix != "" {
		parts = append([]string{s.prefix}, parts...)
	}
	return path.Join(parts...)
}

func (s *S3) sessionPrefix(userID, sessionID string) string {
	return s.key(userID, sessionID) + "/"
}

func (s *S3) EnsureNamespace(_ context.Context, userID string) error {
	return checkIDs(userID)
}

func (s *S3) RemoveNamespace(_ context.Context, userID string) error {
	return checkIDs(userID)
}

func (s *S3) Put(ctx context.Context, userID, sessionID, filename string, r io.Reader) (int64, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return 0, err
	}
	if err := checkFilename(filename); err != nil {
		return 0, err
	}

	// PutObject 需要可 seek 的 body 才能签名, 先落盘
	spool, err := os.CreateTemp("", "rtr-chunk-*")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	n, err := io.Copy(spool, r)
	if err != nil {
		return 0, err
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(userID, sessionID, filename)),
		Body:          spool,
		ContentLength: aws.Int64(n),
		ContentType:   aws.String("video/quicktime"),
	})
	if err != nil {
		return 0, fmt.Errorf("put object: %w", err)
	}
	return n, nil
}

func (s *S3) List(ctx context.Context, userID, sessionID string) ([]Object, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return nil, err
	}
	prefix := s.sessionPrefix(userID, sessionID)

	var objs []Object
	found := false
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, o := range page.Contents {
			found = true
			name := strings.TrimPrefix(aws.ToString(o.Key), prefix)
			if strings.Contains(name, "/") || !isChunk(name) {
				continue
			}
			objs = append(objs, Object{Name: name, Size: aws.ToInt64(o.Size)})
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	sortObjects(objs)
	return objs, nil
}

func (s *S3) Open(ctx context.Context, userID, sessionID, filename string) (io.ReadCloser, int64, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return nil, 0, err
	}
	if err := checkFilename(filename); err != nil {
		return nil, 0, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(userID, sessionID, filename)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("get object: %w", err)
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}

func (s *S3) DeleteSession(ctx context.Context, userID, sessionID string) (bool, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return false, err
	}

	existed := false
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.sessionPrefix(userID, sessionID)),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return existed, fmt.Errorf("list objects: %w", err)
		}
		if len(page.Contents) == 0 {
			continue
		}
		existed = true

		ids := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, o := range page.Contents {
			ids = append(ids, types.ObjectIdentifier{Key: o.Key})
		}
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return existed, fmt.Errorf("delete objects: %w", err)
		}
		if len(out.Errors) > 0 {
			return existed, fmt.Errorf("delete objects: %s", aws.ToString(out.Errors[0].Message))
		}
	}
	return existed, nil
}

func (s *S3) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func (s *S3) PresignGet(ctx context.Context, userID, sessionID, filename string, ttl time.Duration) (string, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return "", err
	}
	if err := checkFilename(filename); err != nil {
		return "", err
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(userID, sessionID, filename)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return req.URL, nil
}
