// Where: internal/infra/publish/ports.go
// What: Storage capabilities used by the publisher.
// Why: Keep SDK types out of the publishing flow so tests can use fakes.
package publish

import "context"

// ObjectInput is one object upload.
type ObjectInput struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// S3API is the object-store subset the publisher needs.
type S3API interface {
	PutObject(ctx context.Context, input ObjectInput) error
}

// DynamoDBAPI is the index-table subset the publisher needs. Every
// attribute is stored as a string.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, table string, item map[string]string) error
}

// ClientFactory builds storage clients for a destination.
type ClientFactory interface {
	S3(ctx context.Context, settings Settings) (S3API, error)
	DynamoDB(ctx context.Context, settings Settings) (DynamoDBAPI, error)
}
