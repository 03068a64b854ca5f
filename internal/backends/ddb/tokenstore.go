package ddb

import (
	"context"
	"time"
	"ws1uem/internal/ports"
	"ws1uem/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TokenStore keeps OAuth tokens in a DynamoDB table keyed PK=TOKEN#<key>, SK=OAUTH.
type TokenStore struct {
	table string
	cli   *dynamodb.Client
}

var _ ports.TokenStore = &TokenStore{}

type tokenItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	AccessToken string `dynamodbav:"AccessToken"`
	AcquiredAt  int64  `dynamodbav:"AcquiredAt"`
	TTLSeconds  int64  `dynamodbav:"TTLSeconds"`
	// ExpiresAt is the unix second a DynamoDB TTL on this attribute may drop the item at.
	ExpiresAt int64 `dynamodbav:"ExpiresAt"`
}

// NewTokenStore creates the table when it does not exist yet.
func NewTokenStore(ctx context.Context, table string, cli *dynamodb.Client) (*TokenStore, error) {
	if err := createTableIfNotExists(ctx, cli, table); err != nil {
		return nil, err
	}
	return &TokenStore{table: table, cli: cli}, nil
}

func (s *TokenStore) key(key string) map[string]ddbTypes.AttributeValue {
	return map[string]ddbTypes.AttributeValue{
		"PK": &ddbTypes.AttributeValueMemberS{Value: pkToken(key)},
		"SK": &ddbTypes.AttributeValueMemberS{Value: skOAuth()},
	}
}

func (s *TokenStore) Load(ctx context.Context, key string) (*types.CachedToken, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.table,
		Key:            s.key(key),
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}
	var item tokenItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return &types.CachedToken{
		AccessToken: item.AccessToken,
		AcquiredAt:  time.Unix(0, item.AcquiredAt),
		TTL:         time.Duration(item.TTLSeconds) * time.Second,
	}, nil
}

func (s *TokenStore) Save(ctx context.Context, key string, token types.CachedToken) error {
	item, err := attributevalue.MarshalMap(tokenItem{
		PK:          pkToken(key),
		SK:          skOAuth(),
		AccessToken: token.AccessToken,
		AcquiredAt:  token.AcquiredAt.UnixNano(),
		TTLSeconds:  int64(token.TTL / time.Second),
		ExpiresAt:   token.AcquiredAt.Add(token.TTL).Unix(),
	})
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	return err
}

func (s *TokenStore) Clear(ctx context.Context, key string) error {
	_, err := s.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.table,
		Key:       s.key(key),
	})
	return err
}

// ClearAll drops and recreates the table.
func (s *TokenStore) ClearAll(ctx context.Context) error {
	_, err := s.cli.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: &s.table,
	})
	if err != nil {
		return err
	}
	err = dynamodb.NewTableNotExistsWaiter(s.cli).Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, 30*time.Second)
	if err != nil {
		return err
	}
	return createTableIfNotExists(ctx, s.cli, s.table)
}
