// Where: internal/infra/publish/publisher.go
// What: Upload rendered project contexts and index them.
// Why: Share evaluation results with code generation jobs running elsewhere.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
	"github.com/poruru/projectctx/internal/logfields"
	"github.com/poruru/projectctx/internal/version"
)

// ErrBucketRequired is returned when publishing without a bucket.
var ErrBucketRequired = errors.New("publish bucket is required")

// Index attribute names.
const (
	AttrProjectPath     = "ProjectPath"
	AttrConfiguration   = "Configuration"
	AttrTargetFramework = "TargetFramework"
	AttrObjectKey       = "ObjectKey"
	AttrEvaluatedAt     = "EvaluatedAt"
)

// Settings names the publish destination.
type Settings struct {
	Bucket   string
	Table    string
	Endpoint string
	Region   string
}

// Record is one evaluated context ready to publish. Body is the JSON document.
type Record struct {
	ProjectPath   string
	Configuration string
	Context       *projectmodel.ProjectContext
	Body          []byte
}

// Receipt describes where a record was stored.
type Receipt struct {
	Bucket  string
	Key     string
	Table   string
	Indexed bool
}

// Publisher uploads records to S3 and optionally indexes them in DynamoDB.
type Publisher struct {
	Clients ClientFactory
	Logger  *slog.Logger
	Now     func() time.Time
	NewID   func() string
}

// New returns a Publisher backed by the AWS SDK.
func New(logger *slog.Logger) *Publisher {
	return &Publisher{Clients: NewAWSClientFactory(), Logger: logger}
}

// ObjectKey returns <project>/<configuration>/<id>.json.
func ObjectKey(record Record, id string) string {
	return path.Join(projectSegment(record), segment(record.Configuration, "default"), id+".json")
}

func projectSegment(record Record) string {
	if record.Context != nil && strings.TrimSpace(record.Context.ProjectName) != "" {
		return segment(record.Context.ProjectName, "project")
	}
	base := filepath.Base(record.ProjectPath)
	return segment(strings.TrimSuffix(base, filepath.Ext(base)), "project")
}

// segment keeps a key component to one path level.
func segment(value, fallback string) string {
	value = strings.TrimSpace(value)
	value = strings.NewReplacer("/", "_", "\\", "_").Replace(value)
	if value == "" || value == "." || value == ".." {
		return fallback
	}
	return value
}

// Publish stores record in settings.Bucket and, when settings.Table is set,
// writes an index item pointing at the object.
func (p *Publisher) Publish(ctx context.Context, settings Settings, record Record) (Receipt, error) {
	if p == nil || p.Clients == nil {
		return Receipt{}, fmt.Errorf("publisher is not configured")
	}
	bucket := strings.TrimSpace(settings.Bucket)
	if bucket == "" {
		return Receipt{}, ErrBucketRequired
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	newID := uuid.NewString
	if p.NewID != nil {
		newID = p.NewID
	}

	key := ObjectKey(record, newID())
	s3Client, err := p.Clients.S3(ctx, settings)
	if err != nil {
		return Receipt{}, fmt.Errorf("create s3 client: %w", err)
	}
	err = s3Client.PutObject(ctx, ObjectInput{
		Bucket:      bucket,
		Key:         key,
		Body:        record.Body,
		ContentType: "application/json",
		Metadata: map[string]string{
			"project-path":  metadataValue(record.ProjectPath),
			"configuration": metadataValue(record.Configuration),
			"generator":     version.UserAgent(),
		},
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	logger.Info("published project context", logfields.Bucket(bucket), logfields.ObjectKey(key))

	receipt := Receipt{Bucket: bucket, Key: key}
	table := strings.TrimSpace(settings.Table)
	if table == "" {
		return receipt, nil
	}
	receipt.Table = table

	dynamo, err := p.Clients.DynamoDB(ctx, settings)
	if err != nil {
		return receipt, fmt.Errorf("create dynamodb client: %w", err)
	}
	if err := dynamo.PutItem(ctx, table, IndexItem(record, key, now())); err != nil {
		return receipt, fmt.Errorf("index %s in %s: %w", key, table, err)
	}
	receipt.Indexed = true
	return receipt, nil
}

// IndexItem builds the DynamoDB attributes for a published record.
func IndexItem(record Record, key string, evaluatedAt time.Time) map[string]string {
	item := map[string]string{
		AttrProjectPath:   record.ProjectPath,
		AttrConfiguration: record.Configuration,
		AttrObjectKey:     key,
		AttrEvaluatedAt:   evaluatedAt.UTC().Format(time.RFC3339),
	}
	if record.Context != nil && record.Context.TargetFramework != "" {
		item[AttrTargetFramework] = record.Context.TargetFramework
	}
	return item
}

// metadataValue percent-encodes v; S3 user metadata must be US-ASCII.
func metadataValue(v string) string {
	return url.PathEscape(v)
}
