package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/podiumlabs/podium/database"
	"github.com/podiumlabs/podium/models"
)

// PrizeRepository reads the sponsored prizes the indexer attaches to a
// tournament. Sponsoring happens on-chain; podium only mirrors it.
type PrizeRepository interface {
	ListSponsoredPrizes(ctx context.Context, tournamentId string) ([]models.SponsoredPrize, error)
}

type prizeRepo struct {
	db *database.DynamoDBClient
}

func NewPrizeRepository(db *database.DynamoDBClient) PrizeRepository {
	return &prizeRepo{db: db}
}

func (r *prizeRepo) ListSponsoredPrizes(ctx context.Context, tournamentId string) ([]models.SponsoredPrize, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: models.TournamentPK(tournamentId)},
			":prefix": &types.AttributeValueMemberS{Value: models.PrizeSKPrefix()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list sponsored prizes: %w", err)
	}

	prizes := make([]models.SponsoredPrize, 0, len(result.Items))
	for _, item := range result.Items {
		var prize models.SponsoredPrize
		if err := attributevalue.UnmarshalMap(item, &prize); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sponsored prize: %w", err)
		}
		prizes = append(prizes, prize)
	}

	return prizes, nil
}
