package repository

import (
	"context"
	"strings"
	"time"

	"taskilo_finance/internal/domain/entities"
	"taskilo_finance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	defaultCustomersTableName = "customers"
	customersCompanyIDIndex   = "company_id-index"
	customersTaskiloIDIndex   = "taskilo_customer_id-index"
)

type customerContactItem struct {
	Type      string `dynamodbav:"type"`
	Value     string `dynamodbav:"value"`
	IsPrimary bool   `dynamodbav:"is_primary"`
}

type customerAddressItem struct {
	Street     string `dynamodbav:"street"`
	PostalCode string `dynamodbav:"postal_code"`
	City       string `dynamodbav:"city"`
	Country    string `dynamodbav:"country"`
}

type customerItem struct {
	ID                string                `dynamodbav:"id"`
	CompanyID         string                `dynamodbav:"company_id"`
	Type              string                `dynamodbav:"type"`
	DisplayName       string                `dynamodbav:"display_name"`
	FirstName         string                `dynamodbav:"first_name,omitempty"`
	LastName          string                `dynamodbav:"last_name,omitempty"`
	Contacts          []customerContactItem `dynamodbav:"contacts,omitempty"`
	BillingAddress    customerAddressItem   `dynamodbav:"billing_address"`
	TaskiloCustomerID string                `dynamodbav:"taskilo_customer_id,omitempty"`
	Notes             string                `dynamodbav:"notes,omitempty"`
	Tags              []string              `dynamodbav:"tags,omitempty"`
	CreatedAt         string                `dynamodbav:"created_at"`
	UpdatedAt         string                `dynamodbav:"updated_at"`
	CreatedBy         string                `dynamodbav:"created_by,omitempty"`
}

// CustomerDynamoRepository persists finance customers in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: company_id-index (PK: company_id)
//   - GSI: taskilo_customer_id-index (PK: taskilo_customer_id)

type CustomerDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
	}
}

func (r *CustomerDynamoRepository) FindByTaskiloID(ctx context.Context, taskiloCustomerID, companyID string) (entities.Customer, error) {
	// Taskilo customer ids are global, so another tenant's record for the
	// same id can sit in front of ours on the index. The company filter is
	// applied after pagination, never via Limit: Limit counts evaluated
	// items before the filter and can cut the query off on a foreign
	// tenant's page.
	items, err := queryAllItems(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customersTaskiloIDIndex),
		KeyConditionExpression: aws.String("taskilo_customer_id = :tid"),
		FilterExpression:       aws.String("company_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: taskiloCustomerID},
			":cid": &types.AttributeValueMemberS{Value: companyID},
		},
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(items) == 0 {
		return entities.Customer{}, nil
	}

	var it customerItem
	if err := attributevalue.UnmarshalMap(items[0], &it); err != nil {
		return entities.Customer{}, err
	}
	return fromCustomerItem(it), nil
}

// Search returns the company's customers matching the term against display
// name or any contact value (case-insensitive substring). The filtering
// happens client-side after a company-scoped query.
func (r *CustomerDynamoRepository) Search(ctx context.Context, companyID, searchTerm string) ([]entities.Customer, error) {
	items, err := queryAllItems(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customersCompanyIDIndex),
		KeyConditionExpression: aws.String("company_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: companyID},
		},
	})
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	matches := make([]entities.Customer, 0, len(items))
	for _, raw := range items {
		var it customerItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		customer := fromCustomerItem(it)
		if term == "" || customerMatchesTerm(customer, term) {
			matches = append(matches, customer)
		}
	}
	return matches, nil
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer, userID, companyID string) (entities.Customer, error) {
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CompanyID = companyID
	c.CreatedAt = now
	c.UpdatedAt = now
	c.CreatedBy = userID

	av, err := attributevalue.MarshalMap(toCustomerItem(c))
	if err != nil {
		return entities.Customer{}, err
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
		return entities.Customer{}, err
	}
	return c, nil
}

func customerMatchesTerm(c entities.Customer, term string) bool {
	if strings.Contains(strings.ToLower(c.DisplayName), term) {
		return true
	}
	for _, contact := range c.Contacts {
		if strings.Contains(strings.ToLower(contact.Value), term) {
			return true
		}
	}
	return false
}

func toCustomerItem(c entities.Customer) customerItem {
	contacts := make([]customerContactItem, 0, len(c.Contacts))
	for _, contact := range c.Contacts {
		contacts = append(contacts, customerContactItem{
			Type:      string(contact.Type),
			Value:     contact.Value,
			IsPrimary: contact.IsPrimary,
		})
	}

	return customerItem{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Type:        string(c.Type),
		DisplayName: c.DisplayName,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Contacts:    contacts,
		BillingAddress: customerAddressItem{
			Street:     c.BillingAddress.Street,
			PostalCode: c.BillingAddress.PostalCode,
			City:       c.BillingAddress.City,
			Country:    c.BillingAddress.Country,
		},
		TaskiloCustomerID: c.TaskiloCustomerID,
		Notes:             c.Notes,
		Tags:              c.Tags,
		CreatedAt:         formatTime(c.CreatedAt),
		UpdatedAt:         formatTime(c.UpdatedAt),
		CreatedBy:         c.CreatedBy,
	}
}

func fromCustomerItem(it customerItem) entities.Customer {
	contacts := make([]entities.Contact, 0, len(it.Contacts))
	for _, contact := range it.Contacts {
		contacts = append(contacts, entities.Contact{
			Type:      entities.ContactType(contact.Type),
			Value:     contact.Value,
			IsPrimary: contact.IsPrimary,
		})
	}

	return entities.Customer{
		ID:          it.ID,
		CompanyID:   it.CompanyID,
		Type:        entities.CustomerType(it.Type),
		DisplayName: it.DisplayName,
		FirstName:   it.FirstName,
		LastName:    it.LastName,
		Contacts:    contacts,
		BillingAddress: entities.BillingAddress{
			Street:     it.BillingAddress.Street,
			PostalCode: it.BillingAddress.PostalCode,
			City:       it.BillingAddress.City,
			Country:    it.BillingAddress.Country,
		},
		TaskiloCustomerID: it.TaskiloCustomerID,
		Notes:             it.Notes,
		Tags:              it.Tags,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		CreatedBy:         it.CreatedBy,
	}
}
