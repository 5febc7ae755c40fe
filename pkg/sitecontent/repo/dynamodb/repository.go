// Package dynamodb provides a DynamoDB-backed implementation of the
// sitecontent.Repository interface.
//
// The design is a single table keyed by the content item id (partition key,
// no sort key) with three global secondary indexes, each a single-attribute
// hash index projecting the full item:
//
//   - slug-index   — look up items by slug
//   - type-index   — enumerate items of one content type
//   - status-index — enumerate items in one lifecycle status
//
// Each index supports exact-match lookup only and enforces no uniqueness;
// several items may share a slug. The table is billed on demand
// (PAY_PER_REQUEST), so there is no capacity planning.
//
// By default New creates an AWS SDK v2 DynamoDB client from the resolved AWS
// config. Supply a client via NewWithClient to inject a custom or mock
// implementation.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

// Index names on the content table.
const (
	SlugIndex   = "slug-index"
	TypeIndex   = "type-index"
	StatusIndex = "status-index"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses.
// Narrowing the dependency keeps mock injection cheap in tests.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Config options for the DynamoDB repository
type Config struct {
	Region          string // AWS region
	TableName       string // Content table name
	AccessKeyID     string // AWS access key ID (optional, default chain otherwise)
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional endpoint override for DynamoDB Local
}

// Repository implements sitecontent.Repository on a single DynamoDB table
type Repository struct {
	client DynamoDBAPI
	table  string
}

var _ sitecontent.Repository = (*Repository)(nil)

// New creates a DynamoDB repository from the given config
func New(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.TableName == "" {
		return nil, errors.New("table name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		// Use provided credentials
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Use default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOpts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		// DynamoDB Local for development
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &Repository{
		client: dynamodb.NewFromConfig(awsCfg, clientOpts...),
		table:  cfg.TableName,
	}, nil
}

// NewWithClient creates a repository using a caller-supplied client
func NewWithClient(client DynamoDBAPI, table string) *Repository {
	return &Repository{client: client, table: table}
}

func (r *Repository) CreateContent(ctx context.Context, item *sitecontent.ContentItem) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal content item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put content item: %w", err)
	}
	return nil
}

func (r *Repository) GetContent(ctx context.Context, id string) (*sitecontent.ContentItem, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, sitecontent.ErrContentNotFound
	}

	var item sitecontent.ContentItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content item: %w", err)
	}
	return &item, nil
}

func (r *Repository) GetContentBySlug(ctx context.Context, slug string, contentType *sitecontent.ContentType) (*sitecontent.ContentItem, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(SlugIndex),
		KeyConditionExpression: aws.String("slug = :slug"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":slug": &types.AttributeValueMemberS{Value: slug},
		},
	}

	items, err := r.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query slug index: %w", err)
	}

	// The index enforces no uniqueness; when duplicate slugs exist across
	// types the optional type narrows the match.
	for _, item := range items {
		if contentType != nil && item.Type != *contentType {
			continue
		}
		return item, nil
	}
	return nil, sitecontent.ErrContentNotFound
}

func (r *Repository) UpdateContent(ctx context.Context, item *sitecontent.ContentItem) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal content item: %w", err)
	}

	// The service layer already merged fields; the write replaces the item
	// whole. The condition keeps update from resurrecting a deleted id.
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return sitecontent.ErrContentNotFound
		}
		return fmt.Errorf("failed to update content item: %w", err)
	}
	return nil
}

func (r *Repository) DeleteContent(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return sitecontent.ErrContentNotFound
		}
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	return nil
}

func (r *Repository) ListContent(ctx context.Context, filters sitecontent.ListFilters) ([]*sitecontent.ContentItem, error) {
	var items []*sitecontent.ContentItem
	var err error

	// One filter rides its index; the second attribute is filtered
	// client-side. "type" and "status" are DynamoDB reserved words, hence
	// the attribute name placeholders.
	switch {
	case filters.Type != nil:
		items, err = r.queryAll(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.table),
			IndexName:                aws.String(TypeIndex),
			KeyConditionExpression:   aws.String("#t = :type"),
			ExpressionAttributeNames: map[string]string{"#t": "type"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":type": &types.AttributeValueMemberS{Value: string(*filters.Type)},
			},
		})
	case filters.Status != nil:
		items, err = r.queryAll(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.table),
			IndexName:                aws.String(StatusIndex),
			KeyConditionExpression:   aws.String("#s = :status"),
			ExpressionAttributeNames: map[string]string{"#s": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(*filters.Status)},
			},
		})
	default:
		items, err = r.scanAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	result := items[:0]
	for _, item := range items {
		if filters.Matches(item) {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *Repository) CountContent(ctx context.Context, filters sitecontent.ListFilters) (int, error) {
	items, err := r.ListContent(ctx, filters)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// queryAll drains a query through all result pages
func (r *Repository) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]*sitecontent.ContentItem, error) {
	var items []*sitecontent.ContentItem
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		page, err := unmarshalItems(out.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// scanAll drains a full-table scan through all result pages
func (r *Repository) scanAll(ctx context.Context) ([]*sitecontent.ContentItem, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.table)}
	var items []*sitecontent.ContentItem
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		page, err := unmarshalItems(out.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func unmarshalItems(avs []map[string]types.AttributeValue) ([]*sitecontent.ContentItem, error) {
	items := make([]*sitecontent.ContentItem, 0, len(avs))
	for _, av := range avs {
		var item sitecontent.ContentItem
		if err := attributevalue.UnmarshalMap(av, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal content item: %w", err)
		}
		items = append(items, &item)
	}
	return items, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}
