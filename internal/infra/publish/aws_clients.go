// Where: internal/infra/publish/aws_clients.go
// What: AWS SDK adapters for S3 and DynamoDB.
// Why: Map publisher inputs to SDK request types.
package publish

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsS3Client struct {
	client *s3.Client
}

func (c awsS3Client) PutObject(ctx context.Context, input ObjectInput) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.PutObject(ctx, buildPutObjectInput(input))
	return err
}

func buildPutObjectInput(input ObjectInput) *s3.PutObjectInput {
	out := &s3.PutObjectInput{
		Bucket:        aws.String(input.Bucket),
		Key:           aws.String(input.Key),
		Body:          bytes.NewReader(input.Body),
		ContentLength: aws.Int64(int64(len(input.Body))),
	}
	if input.ContentType != "" {
		out.ContentType = aws.String(input.ContentType)
	}
	if len(input.Metadata) > 0 {
		out.Metadata = input.Metadata
	}
	return out
}

type awsDynamoClient struct {
	client *dynamodb.Client
}

func (c awsDynamoClient) PutItem(ctx context.Context, table string, item map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.PutItem(ctx, buildPutItemInput(table, item))
	return err
}

func buildPutItemInput(table string, item map[string]string) *dynamodb.PutItemInput {
	attrs := make(map[string]types.AttributeValue, len(item))
	for key, value := range item {
		attrs[key] = &types.AttributeValueMemberS{Value: value}
	}
	return &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      attrs,
	}
}
