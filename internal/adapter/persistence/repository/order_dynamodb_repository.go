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

const defaultOrdersTableName = "orders"

// orderItem mirrors the Taskilo order document. Monetary attributes are
// stored in major units (euros) by the Taskilo side and converted to cents
// on load.
type orderItem struct {
	ID                 string  `dynamodbav:"id"`
	CompanyID          string  `dynamodbav:"company_id"`
	CustomerID         string  `dynamodbav:"customer_id,omitempty"`
	CustomerEmail      string  `dynamodbav:"customer_email,omitempty"`
	CustomerName       string  `dynamodbav:"customer_name,omitempty"`
	DisplayName        string  `dynamodbav:"display_name,omitempty"`
	ServiceDescription string  `dynamodbav:"service_description,omitempty"`
	Description        string  `dynamodbav:"description,omitempty"`
	HourlyRate         float64 `dynamodbav:"hourly_rate,omitempty"`
	EstimatedHours     float64 `dynamodbav:"estimated_hours,omitempty"`
	ActualHours        float64 `dynamodbav:"actual_hours,omitempty"`
	TotalAmount        float64 `dynamodbav:"total_amount,omitempty"`
	Status             string  `dynamodbav:"status,omitempty"`
	CreatedAt          string  `dynamodbav:"created_at,omitempty"`
	CompletedAt        string  `dynamodbav:"completed_at,omitempty"`
}

// OrderDynamoRepository reads Taskilo orders from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The finance side never writes this table.

type OrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, orderID, companyID string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	if it.CompanyID != companyID {
		return entities.Order{}, interfaces.ErrOrderAccessDenied
	}
	return fromOrderItem(it), nil
}

func fromOrderItem(it orderItem) entities.Order {
	name := it.CustomerName
	if name == "" {
		name = it.DisplayName
	}

	description := it.ServiceDescription
	if description == "" {
		description = it.Description
	}
	if description == "" {
		description = "Service"
	}

	createdAt := parseTime(it.CreatedAt)
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var completedAt *time.Time
	if it.CompletedAt != "" {
		if t := parseTime(it.CompletedAt); !t.IsZero() {
			completedAt = &t
		}
	}

	return entities.Order{
		ID:                 it.ID,
		CompanyID:          it.CompanyID,
		CustomerID:         it.CustomerID,
		CustomerEmail:      it.CustomerEmail,
		CustomerName:       name,
		ServiceDescription: description,
		HourlyRateCents:    centsFromMajor(it.HourlyRate),
		EstimatedHours:     it.EstimatedHours,
		ActualHours:        it.ActualHours,
		TotalAmountCents:   centsFromMajor(it.TotalAmount),
		Status:             it.Status,
		CreatedAt:          createdAt,
		CompletedAt:        completedAt,
	}
}
