package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/mathfield/internal/config"
	"github.com/vango-dev/mathfield/internal/errors"
)

// DefaultCacheControl is sent with fingerprinted objects. The manifest is
// always sent with no-cache.
const DefaultCacheControl = "public, max-age=31536000, immutable"

// PutObjectAPI is the subset of *s3.Client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads runtime files under fingerprinted keys followed by the
// manifest that points at them.
type Publisher struct {
	client       PutObjectAPI
	bucket       string
	prefix       string
	cacheControl string
	logger       *slog.Logger
}

// NewPublisher returns a publisher for cfg. It fails with E300 when no
// bucket is configured.
func NewPublisher(client PutObjectAPI, cfg config.PublishConfig, logger *slog.Logger) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("E300")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cc := cfg.CacheControl
	if cc == "" {
		cc = DefaultCacheControl
	}
	return &Publisher{
		client:       client,
		bucket:       cfg.Bucket,
		prefix:       strings.Trim(cfg.Prefix, "/"),
		cacheControl: cc,
		logger:       logger.With("component", "assets", "bucket", cfg.Bucket),
	}, nil
}

// Publish uploads every file and then the manifest. Files are uploaded in
// name order. The manifest is only written when every file succeeded, so a
// partial publish never becomes visible.
func (p *Publisher) Publish(ctx context.Context, files map[string][]byte) (*Manifest, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	m := NewManifest()
	for _, name := range names {
		data := files[name]
		hashed := Fingerprint(name, data)
		if err := p.put(ctx, hashed, data, p.cacheControl); err != nil {
			return nil, err
		}
		m.Set(name, hashed)
		p.logger.Info("asset published", "name", name, "key", p.key(hashed), "bytes", len(data))
	}

	body, err := json.MarshalIndent(m.All(), "", "  ")
	if err != nil {
		return nil, err
	}
	if err := p.put(ctx, ManifestName, body, "no-cache"); err != nil {
		return nil, err
	}
	p.logger.Info("manifest published", "key", p.key(ManifestName), "entries", m.Len())
	return m, nil
}

func (p *Publisher) put(ctx context.Context, name string, data []byte, cacheControl string) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(p.key(name)),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType(name)),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return errors.New("E301").WithDetailf("Uploading %s to bucket %s failed.", p.key(name), p.bucket).Wrap(err)
	}
	return nil
}

func (p *Publisher) key(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "/" + name
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".map", ".json":
		return "application/json"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// NewS3Client builds a client for cfg. Credentials come from the standard
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN variables.
// A custom endpoint targets S3-compatible stores such as MinIO.
func NewS3Client(cfg config.PublishConfig) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
		Credentials:  aws.NewCredentialsCache(envCredentials{}),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E302")
	}
	return creds, nil
}
