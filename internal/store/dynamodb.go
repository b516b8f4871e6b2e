// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tomtom215/refeed/internal/config"
	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/models"
)

// tableActiveTimeout bounds the wait for a freshly created table to become ACTIVE.
const tableActiveTimeout = 2 * time.Minute

// DynamoAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoAPI interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore keeps meals in a DynamoDB table with hash key "id".
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamoStore wraps an existing client.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// OpenDynamoStore builds a client from the default AWS credential chain.
// A non-empty endpoint targets DynamoDB Local.
func OpenDynamoStore(ctx context.Context, cfg config.DynamoDBConfig, table string) (*DynamoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	logging.Info().
		Str("region", cfg.Region).
		Str("endpoint", cfg.Endpoint).
		Str("table", table).
		Msg("DynamoDB meal store configured")
	return NewDynamoStore(client, table), nil
}

// CreateTableIfAbsent creates the table and waits for it to become ACTIVE.
func (s *DynamoStore) CreateTableIfAbsent(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(10),
			WriteCapacityUnits: aws.Int64(10),
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return ErrTableExists
		}
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)}, tableActiveTimeout); err != nil {
		return fmt.Errorf("wait for table %s: %w", s.table, err)
	}
	return nil
}

func (s *DynamoStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// Get performs a consistent read of one item.
func (s *DynamoStore) Get(ctx context.Context, id string) (*models.Meal, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, mapDynamoError(err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var meal models.Meal
	if err := attributevalue.UnmarshalMap(out.Item, &meal); err != nil {
		return nil, fmt.Errorf("decode meal %s: %w", id, err)
	}
	return &meal, nil
}

// Put writes meal, replacing any item with the same id.
func (s *DynamoStore) Put(ctx context.Context, meal *models.Meal) error {
	item, err := attributevalue.MarshalMap(meal)
	if err != nil {
		return fmt.Errorf("encode meal: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return mapDynamoError(err)
}

// Delete removes id; DynamoDB deletes are idempotent.
func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(id),
	})
	return mapDynamoError(err)
}

// Scan pages through the whole table, skipping items that fail to decode.
func (s *DynamoStore) Scan(ctx context.Context) (*ScanResult, error) {
	result := &ScanResult{Meals: []*models.Meal{}}

	pager := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapDynamoError(err)
		}
		for _, item := range page.Items {
			var meal models.Meal
			if err := attributevalue.UnmarshalMap(item, &meal); err != nil || meal.ID == "" {
				result.Skipped++
				continue
			}
			result.Meals = append(result.Meals, &meal)
		}
	}
	return result, nil
}

// Close is a no-op; the SDK client holds no resources needing release.
func (s *DynamoStore) Close() error { return nil }

func mapDynamoError(err error) error {
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, notFound.ErrorMessage())
	}
	return err
}
