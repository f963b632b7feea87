package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/podiumlabs/podium/database"
	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/models"
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetById(ctx context.Context, tournamentId string) (*models.Tournament, error)
	ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error)
	IncrementEntryCount(ctx context.Context, tournamentId string) (*models.Tournament, error)
}

type tournamentRepo struct {
	db *database.DynamoDBClient
}

func NewTournamentRepository(db *database.DynamoDBClient) TournamentRepository {
	return &tournamentRepo{db: db}
}

func (r *tournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.PK = models.TournamentPK(tournament.TournamentId)
	tournament.SK = models.MetaSK()
	tournament.GSI1PK = models.TournamentGSI1PK(tournament.Status.String())
	tournament.GSI1SK = models.StartTimeGSI1SK(tournament.Schedule.Game.Start.Format(time.RFC3339))
	tournament.CreatedAt = time.Now().UTC()
	tournament.UpdatedAt = tournament.CreatedAt

	item, err := attributevalue.MarshalMap(tournament)
	if err != nil {
		return fmt.Errorf("failed to marshal tournament: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}

	return nil
}

func (r *tournamentRepo) GetById(ctx context.Context, tournamentId string) (*models.Tournament, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.TournamentPK(tournamentId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	if result.Item == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "tournament not found")
	}

	var tournament models.Tournament
	if err := attributevalue.UnmarshalMap(result.Item, &tournament); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}

	return &tournament, nil
}

func (r *tournamentRepo) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :status"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: models.TournamentGSI1PK(status.String())},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	tournaments := make([]models.Tournament, 0, len(result.Items))
	for _, item := range result.Items {
		var tournament models.Tournament
		if err := attributevalue.UnmarshalMap(item, &tournament); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
		}
		tournaments = append(tournaments, tournament)
	}

	return tournaments, nil
}

// IncrementEntryCount bumps the entry counter atomically. The entry fee
// pool splits over this count, so it only ever moves through this
// single conditional update.
func (r *tournamentRepo) IncrementEntryCount(ctx context.Context, tournamentId string) (*models.Tournament, error) {
	result, err := r.db.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.TournamentPK(tournamentId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		UpdateExpression:    aws.String("ADD entry_count :one SET updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND #status = :open"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":now":  &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
			":open": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", models.Open)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to increment entry count: %w", err)
	}

	var tournament models.Tournament
	if err := attributevalue.UnmarshalMap(result.Attributes, &tournament); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}

	return &tournament, nil
}
