package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const userIDIndex = "user_id-index"

// estimateItem is the storage shape of a submission. Options and Estimate
// are stored as JSON strings so the nested form structure round-trips
// byte-for-byte regardless of attributevalue quirks.
type estimateItem struct {
	ID        string `dynamodbav:"id"`
	UserID    string `dynamodbav:"user_id"`
	Options   string `dynamodbav:"options"`
	Estimate  string `dynamodbav:"estimate"`
	CreatedAt string `dynamodbav:"created_at"`
}

// EstimateDynamoRepository persists estimate records in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI user_id-index: PK user_id (string), used for the quota count
type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client, tableName string) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *EstimateDynamoRepository) Save(ctx context.Context, record entities.EstimateRecord) (entities.EstimateRecord, error) {
	it, err := toEstimateItem(record)
	if err != nil {
		return entities.EstimateRecord{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.EstimateRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.EstimateRecord{}, err
	}
	return record, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.EstimateRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.EstimateRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.EstimateRecord{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.EstimateRecord{}, err
	}
	return fromEstimateItem(it)
}

// ListAll scans the full table for the admin review surface, newest first.
// Submission volume is a handful per day; a scan is fine at this scale.
func (r *EstimateDynamoRepository) ListAll(ctx context.Context) ([]entities.EstimateRecord, error) {
	var records []entities.EstimateRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range out.Items {
			var it estimateItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			record, err := fromEstimateItem(it)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *EstimateDynamoRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	total := 0
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(userIDIndex),
			KeyConditionExpression: aws.String("#user_id = :user_id"),
			ExpressionAttributeNames: map[string]string{
				"#user_id": "user_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":user_id": &types.AttributeValueMemberS{Value: userID},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, err
		}

		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return total, nil
}

func toEstimateItem(record entities.EstimateRecord) (estimateItem, error) {
	options, err := json.Marshal(record.Options)
	if err != nil {
		return estimateItem{}, fmt.Errorf("marshal options: %w", err)
	}
	estimate, err := json.Marshal(record.Estimate)
	if err != nil {
		return estimateItem{}, fmt.Errorf("marshal estimate: %w", err)
	}
	return estimateItem{
		ID:        record.ID,
		UserID:    record.UserID,
		Options:   string(options),
		Estimate:  string(estimate),
		CreatedAt: formatTime(record.CreatedAt),
	}, nil
}

func fromEstimateItem(it estimateItem) (entities.EstimateRecord, error) {
	record := entities.EstimateRecord{
		ID:     it.ID,
		UserID: it.UserID,
	}
	if err := json.Unmarshal([]byte(it.Options), &record.Options); err != nil {
		return entities.EstimateRecord{}, fmt.Errorf("unmarshal options for %s: %w", it.ID, err)
	}
	if err := json.Unmarshal([]byte(it.Estimate), &record.Estimate); err != nil {
		return entities.EstimateRecord{}, fmt.Errorf("unmarshal estimate for %s: %w", it.ID, err)
	}
	record.CreatedAt = parseTime(it.CreatedAt)
	return record, nil
}
