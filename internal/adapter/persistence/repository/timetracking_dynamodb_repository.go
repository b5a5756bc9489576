package repository

import (
	"context"
	"time"

	"taskilo_finance/internal/domain/entities"
	"taskilo_finance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTimeTrackingTableName = "time_tracking"
	timeTrackingOrderIDIndex     = "order_id-index"
)

type timeTrackingItem struct {
	ID          string  `dynamodbav:"id"`
	OrderID     string  `dynamodbav:"order_id"`
	CompanyID   string  `dynamodbav:"company_id"`
	Date        string  `dynamodbav:"date,omitempty"`
	TotalHours  float64 `dynamodbav:"total_hours,omitempty"`
	Description string  `dynamodbav:"description,omitempty"`
}

// TimeTrackingDynamoRepository aggregates time-tracking entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)

type TimeTrackingDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ITimeTrackingRepository = (*TimeTrackingDynamoRepository)(nil)

func NewTimeTrackingDynamoRepository(ddb *dynamodb.Client) *TimeTrackingDynamoRepository {
	return &TimeTrackingDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TIME_TRACKING_TABLE", defaultTimeTrackingTableName),
	}
}

// SummaryByOrderID sums the hours of all entries for an order and collects
// the daily breakdown in query-emission order. Returns nil when the order
// has no entries.
func (r *TimeTrackingDynamoRepository) SummaryByOrderID(ctx context.Context, orderID, companyID string) (*entities.TimeTrackingSummary, error) {
	items, err := queryAllItems(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(timeTrackingOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		FilterExpression:       aws.String("company_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
			":cid": &types.AttributeValueMemberS{Value: companyID},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	summary := &entities.TimeTrackingSummary{
		DailyEntries: make([]entities.TimeTrackingEntry, 0, len(items)),
	}
	for _, raw := range items {
		var it timeTrackingItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}

		date := it.Date
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}

		summary.TotalHours += it.TotalHours
		summary.DailyEntries = append(summary.DailyEntries, entities.TimeTrackingEntry{
			Date:        date,
			Hours:       it.TotalHours,
			Description: it.Description,
		})
	}
	return summary, nil
}
