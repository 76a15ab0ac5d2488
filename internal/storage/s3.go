package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rakeshranjan410/paperplane-api/config"
)

var (
	// ErrConfig is returned when the gateway is used before region,
	// credentials and bucket are all configured.
	ErrConfig = errors.New("s3 configuration incomplete")
	// ErrFetch is returned when the source image cannot be downloaded.
	ErrFetch = errors.New("image fetch failed")
	// ErrWrite is returned when the object store rejects the write.
	ErrWrite = errors.New("s3 write rejected")
)

const keyPrefix = "questions/"

// ObjectStore migrates images into the object store and deletes them again
// during rollback.
type ObjectStore interface {
	// Upload fetches the bytes behind sourceURL and writes them under a
	// fresh, collision-resistant key. It returns the public URL of the new
	// object.
	Upload(ctx context.Context, sourceURL string) (string, error)
	// Delete removes a previously written object. An empty key is a no-op.
	Delete(ctx context.Context, key string) error
	// KeyFromURL recovers the deletable object key from a URL previously
	// returned by Upload.
	KeyFromURL(objectURL string) string
}

type s3Store struct {
	cfg  config.Provider
	http *http.Client

	mu     sync.Mutex
	client *s3.Client
}

func NewS3Store(cfg config.Provider) ObjectStore {
	return &s3Store{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// lazyClient builds the S3 client on first call. Configuration is re-checked
// here rather than in NewS3Store because remote secrets may not have been
// applied when the fx graph is constructed.
func (s *s3Store) lazyClient(ctx context.Context) (*s3.Client, *config.S3, error) {
	c := s.cfg()
	if c.S3.Region == "" || c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" || c.S3.Bucket == "" {
		return nil, nil, fmt.Errorf("%w: region, credentials and bucket must all be set", ErrConfig)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(c.S3.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(c.S3.AccessKeyID, c.S3.SecretAccessKey, ""),
			),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		s.client = s3.NewFromConfig(awsCfg)
	}
	return s.client, &c.S3, nil
}

func (s *s3Store) Upload(ctx context.Context, sourceURL string) (string, error) {
	client, s3cfg, err := s.lazyClient(ctx)
	if err != nil {
		return "", err
	}

	body, err := s.fetch(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	key := objectKey(sourceURL)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	objectURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s3cfg.Bucket, s3cfg.Region, key)
	log.Debug().Str("source", sourceURL).Str("key", key).Msg("Image migrated to S3")
	return objectURL, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	client, s3cfg, err := s.lazyClient(ctx)
	if err != nil {
		return err
	}
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object %q: %w", key, err)
	}
	return nil
}

func (s *s3Store) KeyFromURL(objectURL string) string {
	u, err := url.Parse(objectURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func (s *s3Store) fetch(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, sourceURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, sourceURL, err)
	}
	return body, nil
}

// objectKey derives a fresh storage key for a source URL. The hash input
// includes the current time and a random component, so re-uploading the same
// source never overwrites an earlier object.
func objectKey(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL + strconv.FormatInt(time.Now().UnixNano(), 10) + uuid.NewString()))
	return keyPrefix + hex.EncodeToString(sum[:])[:32] + "." + fileExt(sourceURL)
}

// fileExt infers the file extension from the URL path, defaulting to jpg when
// absent or implausible.
func fileExt(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "jpg"
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" || len(ext) > 5 {
		return "jpg"
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "jpg"
		}
	}
	return strings.ToLower(ext)
}
