// Where: internal/infra/publish/aws_factory.go
// What: AWS client factory for S3 uploads and DynamoDB indexing.
// Why: Encapsulate SDK configuration for both AWS and local emulators.
package publish

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultAWSRegion = "us-east-1"
	// Local emulators accept any key pair.
	emulatorAccessKey = "test"
	emulatorSecretKey = "test"
)

// NewAWSClientFactory returns the SDK-backed ClientFactory.
func NewAWSClientFactory() ClientFactory {
	return awsClientFactory{}
}

type awsClientFactory struct{}

func (awsClientFactory) S3(ctx context.Context, settings Settings) (S3API, error) {
	cfg, err := loadAWSConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint := strings.TrimSpace(settings.Endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return awsS3Client{client: client}, nil
}

func (awsClientFactory) DynamoDB(ctx context.Context, settings Settings) (DynamoDBAPI, error) {
	cfg, err := loadAWSConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint := strings.TrimSpace(settings.Endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
	return awsDynamoClient{client: client}, nil
}

func loadAWSConfig(ctx context.Context, settings Settings) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(resolveRegion(settings.Region)),
	}
	if useEmulatorCredentials(settings) {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(emulatorAccessKey, emulatorSecretKey, ""),
		))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

func resolveRegion(region string) string {
	if region = strings.TrimSpace(region); region != "" {
		return region
	}
	if value := strings.TrimSpace(os.Getenv("AWS_REGION")); value != "" {
		return value
	}
	return defaultAWSRegion
}

// useEmulatorCredentials is true for custom endpoints when no real
// credentials are present in the environment.
func useEmulatorCredentials(settings Settings) bool {
	if strings.TrimSpace(settings.Endpoint) == "" {
		return false
	}
	return os.Getenv("AWS_ACCESS_KEY_ID") == "" && os.Getenv("AWS_PROFILE") == ""
}
