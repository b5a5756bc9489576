package repository

import (
	"context"
	"errors"
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
	defaultInvoicesTableName   = "invoices"
	invoicesSourceOrderIDIndex = "source_order_id-index"

	// Marker items share the invoices table and reserve a source order for
	// exactly one invoice. They carry no source_order_id attribute, so the
	// sparse GSI never returns them.
	sourceMarkerPrefix = "src#"
)

type lineItemItem struct {
	Description string  `dynamodbav:"description"`
	Quantity    float64 `dynamodbav:"quantity"`
	UnitPrice   int64   `dynamodbav:"unit_price"`
	TaxRate     float64 `dynamodbav:"tax_rate"`
	Unit        string  `dynamodbav:"unit"`
	Category    string  `dynamodbav:"category"`
}

type invoiceSyncDataItem struct {
	SourceType     string  `dynamodbav:"source_type"`
	SourceOrderID  string  `dynamodbav:"source_order_id"`
	OriginalAmount int64   `dynamodbav:"original_amount"`
	ActualAmount   int64   `dynamodbav:"actual_amount"`
	HoursPlanned   float64 `dynamodbav:"hours_planned"`
	HoursActual    float64 `dynamodbav:"hours_actual"`
	AutoGenerated  bool    `dynamodbav:"auto_generated"`
	SyncedAt       string  `dynamodbav:"synced_at"`
}

type invoiceItem struct {
	ID            string               `dynamodbav:"id"`
	CompanyID     string               `dynamodbav:"company_id"`
	CustomerID    string               `dynamodbav:"customer_id"`
	InvoiceNumber string               `dynamodbav:"invoice_number"`
	Status        string               `dynamodbav:"status"`
	ServiceDate   string               `dynamodbav:"service_date,omitempty"`
	LineItems     []lineItemItem       `dynamodbav:"line_items,omitempty"`
	Introduction  string               `dynamodbav:"introduction,omitempty"`
	Conclusion    string               `dynamodbav:"conclusion,omitempty"`
	Notes         string               `dynamodbav:"notes,omitempty"`
	SourceOrderID string               `dynamodbav:"source_order_id,omitempty"`
	SyncData      *invoiceSyncDataItem `dynamodbav:"sync_data,omitempty"`
	CreatedAt     string               `dynamodbav:"created_at"`
	UpdatedAt     string               `dynamodbav:"updated_at"`
	CreatedBy     string               `dynamodbav:"created_by,omitempty"`
	UpdatedBy     string               `dynamodbav:"updated_by,omitempty"`
}

// InvoiceDynamoRepository persists invoices in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: source_order_id-index (PK: source_order_id)
//
// Create writes the invoice together with a per-source-order marker item in
// one transaction; the marker's existence condition is what makes "at most
// one invoice per source order and company" hold without a prior read.

type InvoiceDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, draft entities.InvoiceDraft, userID, companyID string) (entities.Invoice, error) {
	now := time.Now().UTC()
	inv := entities.Invoice{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		CustomerID:   draft.CustomerID,
		Status:       entities.InvoiceStatusDraft,
		ServiceDate:  draft.ServiceDate,
		LineItems:    draft.LineItems,
		Introduction: draft.Introduction,
		Conclusion:   draft.Conclusion,
		Notes:        draft.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    userID,
	}
	inv.InvoiceNumber = "RE-" + strings.ToUpper(inv.ID[:8])

	it := toInvoiceItem(inv)
	it.SourceOrderID = draft.SourceOrderID
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Invoice{}, err
	}

	writes := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			},
		},
	}
	if draft.SourceOrderID != "" {
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item: map[string]types.AttributeValue{
					"id":         &types.AttributeValueMemberS{Value: sourceMarkerKey(companyID, draft.SourceOrderID)},
					"company_id": &types.AttributeValueMemberS{Value: companyID},
					"invoice_id": &types.AttributeValueMemberS{Value: inv.ID},
					"created_at": &types.AttributeValueMemberS{Value: formatTime(now)},
				},
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			},
		})
	}

	if _, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes}); err != nil {
		if isConditionalFailure(err) {
			return entities.Invoice{}, interfaces.ErrInvoiceAlreadyExists
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, invoiceID string, draft entities.InvoiceDraft, userID, companyID string) (entities.Invoice, error) {
	lineItems, err := attributevalue.MarshalList(toLineItemItems(draft.LineItems))
	if err != nil {
		return entities.Invoice{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: invoiceID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND company_id = :cid"),
		UpdateExpression: aws.String("SET customer_id = :customer_id, service_date = :service_date, line_items = :line_items, " +
			"introduction = :introduction, conclusion = :conclusion, notes = :notes, updated_at = :updated_at, updated_by = :updated_by"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":          &types.AttributeValueMemberS{Value: companyID},
			":customer_id":  &types.AttributeValueMemberS{Value: draft.CustomerID},
			":service_date": &types.AttributeValueMemberS{Value: formatTime(draft.ServiceDate)},
			":line_items":   &types.AttributeValueMemberL{Value: lineItems},
			":introduction": &types.AttributeValueMemberS{Value: draft.Introduction},
			":conclusion":   &types.AttributeValueMemberS{Value: draft.Conclusion},
			":notes":        &types.AttributeValueMemberS{Value: draft.Notes},
			":updated_at":   &types.AttributeValueMemberS{Value: formatTime(time.Now())},
			":updated_by":   &types.AttributeValueMemberS{Value: userID},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalFailure(err) {
			// Deleted (or never owned by this company) between the
			// caller's lookup and the overwrite.
			return entities.Invoice{}, interfaces.ErrInvoiceNotFound
		}
		return entities.Invoice{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Invoice{}, interfaces.ErrInvoiceNotFound
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) UpdateSyncData(ctx context.Context, invoiceID string, data entities.InvoiceSyncData, userID, companyID string) error {
	syncData, err := attributevalue.MarshalMap(toInvoiceSyncDataItem(data))
	if err != nil {
		return err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: invoiceID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND company_id = :cid"),
		UpdateExpression:    aws.String("SET sync_data = :sync_data, source_order_id = :source_order_id, updated_at = :updated_at, updated_by = :updated_by"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":             &types.AttributeValueMemberS{Value: companyID},
			":sync_data":       &types.AttributeValueMemberM{Value: syncData},
			":source_order_id": &types.AttributeValueMemberS{Value: data.SourceOrderID},
			":updated_at":      &types.AttributeValueMemberS{Value: formatTime(time.Now())},
			":updated_by":      &types.AttributeValueMemberS{Value: userID},
		},
	})
	return err
}

func (r *InvoiceDynamoRepository) UpdateStatus(ctx context.Context, invoiceID string, status entities.InvoiceStatus, userID, companyID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: invoiceID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND company_id = :cid"),
		UpdateExpression:    aws.String("SET #status = :status, updated_at = :updated_at, updated_by = :updated_by"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":        &types.AttributeValueMemberS{Value: companyID},
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
			":updated_by": &types.AttributeValueMemberS{Value: userID},
		},
	})
	return err
}

func (r *InvoiceDynamoRepository) FindBySourceOrderID(ctx context.Context, orderID, companyID string) (entities.Invoice, error) {
	items, err := queryAllItems(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesSourceOrderIDIndex),
		KeyConditionExpression: aws.String("source_order_id = :oid"),
		FilterExpression:       aws.String("company_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
			":cid": &types.AttributeValueMemberS{Value: companyID},
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func sourceMarkerKey(companyID, sourceOrderID string) string {
	return sourceMarkerPrefix + companyID + "#" + sourceOrderID
}

func isConditionalFailure(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return true
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

func toLineItemItems(items []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPriceCents,
			TaxRate:     li.TaxRate,
			Unit:        li.Unit,
			Category:    li.Category,
		})
	}
	return out
}

func fromLineItemItems(items []lineItemItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, li := range items {
		out = append(out, entities.LineItem{
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitPriceCents: li.UnitPrice,
			TaxRate:        li.TaxRate,
			Unit:           li.Unit,
			Category:       li.Category,
		})
	}
	return out
}

func toInvoiceSyncDataItem(data entities.InvoiceSyncData) invoiceSyncDataItem {
	return invoiceSyncDataItem{
		SourceType:     string(data.SourceType),
		SourceOrderID:  data.SourceOrderID,
		OriginalAmount: data.OriginalAmountCents,
		ActualAmount:   data.ActualAmountCents,
		HoursPlanned:   data.HoursPlanned,
		HoursActual:    data.HoursActual,
		AutoGenerated:  data.AutoGenerated,
		SyncedAt:       formatTime(data.SyncedAt),
	}
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	it := invoiceItem{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		ServiceDate:   formatTime(inv.ServiceDate),
		LineItems:     toLineItemItems(inv.LineItems),
		Introduction:  inv.Introduction,
		Conclusion:    inv.Conclusion,
		Notes:         inv.Notes,
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
		CreatedBy:     inv.CreatedBy,
	}
	if inv.SyncData != nil {
		sd := toInvoiceSyncDataItem(*inv.SyncData)
		it.SyncData = &sd
		it.SourceOrderID = inv.SyncData.SourceOrderID
	}
	return it
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	inv := entities.Invoice{
		ID:            it.ID,
		CompanyID:     it.CompanyID,
		CustomerID:    it.CustomerID,
		InvoiceNumber: it.InvoiceNumber,
		Status:        entities.InvoiceStatus(it.Status),
		ServiceDate:   parseTime(it.ServiceDate),
		LineItems:     fromLineItemItems(it.LineItems),
		Introduction:  it.Introduction,
		Conclusion:    it.Conclusion,
		Notes:         it.Notes,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
		CreatedBy:     it.CreatedBy,
	}
	if it.SyncData != nil {
		inv.SyncData = &entities.InvoiceSyncData{
			SourceType:          entities.SyncSource(it.SyncData.SourceType),
			SourceOrderID:       it.SyncData.SourceOrderID,
			OriginalAmountCents: it.SyncData.OriginalAmount,
			ActualAmountCents:   it.SyncData.ActualAmount,
			HoursPlanned:        it.SyncData.HoursPlanned,
			HoursActual:         it.SyncData.HoursActual,
			AutoGenerated:       it.SyncData.AutoGenerated,
			SyncedAt:            parseTime(it.SyncData.SyncedAt),
		}
	}
	return inv
}
