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

// ClaimLedgerRepository reads the append-only claim ledger the
// settlement indexer maintains. Podium never writes here, and the
// mirror may lag true settlement state by the indexing delay — readers
// must treat it as eventually consistent.
type ClaimLedgerRepository interface {
	ListClaims(ctx context.Context, tournamentId string) ([]models.ClaimRecord, error)
}

type claimLedgerRepo struct {
	db *database.DynamoDBClient
}

func NewClaimLedgerRepository(db *database.DynamoDBClient) ClaimLedgerRepository {
	return &claimLedgerRepo{db: db}
}

func (r *claimLedgerRepo) ListClaims(ctx context.Context, tournamentId string) ([]models.ClaimRecord, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: models.TournamentPK(tournamentId)},
			":prefix": &types.AttributeValueMemberS{Value: models.ClaimSKPrefix()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list claim records: %w", err)
	}

	records := make([]models.ClaimRecord, 0, len(result.Items))
	for _, item := range result.Items {
		var record models.ClaimRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal claim record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}
