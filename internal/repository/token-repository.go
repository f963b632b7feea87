package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/podiumlabs/podium/database"
	"github.com/podiumlabs/podium/models"
)

type TokenRepository interface {
	GetTokens(ctx context.Context, addresses []string) (TokenDirectory, error)
}

// TokenDirectory is an in-memory snapshot of token metadata keyed by
// lowercased address. It satisfies the prize aggregator's lookup.
type TokenDirectory map[string]models.TokenMetadata

func (d TokenDirectory) Token(address string) (models.TokenMetadata, bool) {
	meta, ok := d[strings.ToLower(address)]
	return meta, ok
}

type tokenRepo struct {
	db *database.DynamoDBClient
}

func NewTokenRepository(db *database.DynamoDBClient) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) GetTokens(ctx context.Context, addresses []string) (TokenDirectory, error) {
	directory := make(TokenDirectory, len(addresses))
	if len(addresses) == 0 {
		return directory, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, address := range addresses {
		lower := strings.ToLower(address)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		keys = append(keys, map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.TokenPK(lower)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		})
	}

	result, err := r.db.Client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			r.db.Table(): {Keys: keys},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to batch get tokens: %w", err)
	}

	for _, item := range result.Responses[r.db.Table()] {
		var meta models.TokenMetadata
		if err := attributevalue.UnmarshalMap(item, &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal token metadata: %w", err)
		}
		directory[strings.ToLower(meta.Address)] = meta
	}

	return directory, nil
}
