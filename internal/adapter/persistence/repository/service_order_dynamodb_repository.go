package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/domain/storeerr"
	"os_escolpi/internal/realtime"
	"os_escolpi/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

const (
	defaultServiceOrdersTableName = "service_orders"
	scopeIndexName                = "scope-index"
)

type ifoodCredentialsItem struct {
	Email    string `dynamodbav:"email"`
	Password string `dynamodbav:"password,omitempty"`
}

type digitalCertificateItem struct {
	FileName    string `dynamodbav:"file_name"`
	FileContent string `dynamodbav:"file_content,omitempty"`
}

type serviceOrderItem struct {
	ID                 string                  `dynamodbav:"id"`
	Scope              string                  `dynamodbav:"scope"`
	ClientName         string                  `dynamodbav:"client_name"`
	CpfCnpj            string                  `dynamodbav:"cpf_cnpj"`
	Contact            string                  `dynamodbav:"contact"`
	City               string                  `dynamodbav:"city"`
	State              string                  `dynamodbav:"state"`
	PedidoAgora        string                  `dynamodbav:"pedido_agora"`
	Mobile             string                  `dynamodbav:"mobile"`
	IfoodIntegration   string                  `dynamodbav:"ifood_integration"`
	IfoodCredentials   *ifoodCredentialsItem   `dynamodbav:"ifood_credentials,omitempty"`
	DLL                string                  `dynamodbav:"dll"`
	DigitalCertificate *digitalCertificateItem `dynamodbav:"digital_certificate,omitempty"`
	RemoteAccessPhoto  string                  `dynamodbav:"remote_access_photo,omitempty"`
	RemoteAccessCode   string                  `dynamodbav:"remote_access_code,omitempty"`
	CreatedBy          string                  `dynamodbav:"created_by,omitempty"`
	Status             string                  `dynamodbav:"status"`
	CreatedAt          string                  `dynamodbav:"created_at"`
}

// ServiceOrderDynamoRepository persists service orders in DynamoDB and is
// the concrete remote store adapter.
//
// Table requirements:
//   - PK: id (string)
//   - GSI "scope-index": PK scope (string), SK created_at (string)
//
// created_at is stamped here at write time (RFC3339Nano strings sort
// lexicographically in timestamp order, which is what the scope index relies
// on). Successful writes publish a change event to the local feed so every
// in-process subscriber re-reads the collection.
type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	scope     string
	feed      *realtime.Broadcaster
	now       func() time.Time
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client, scope string, feed *realtime.Broadcaster) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICE_ORDERS_TABLE", defaultServiceOrdersTableName),
		scope:     scope,
		feed:      feed,
		now:       time.Now,
	}
}

// TableName exposes the resolved table, used to wire the streams poller.
func (r *ServiceOrderDynamoRepository) TableName() string {
	return r.tableName
}

func (r *ServiceOrderDynamoRepository) Path() string {
	return r.tableName + "/" + r.scope
}

func (r *ServiceOrderDynamoRepository) Add(ctx context.Context, order entities.ServiceOrder) (entities.ServiceOrder, error) {
	order.ID = uuid.NewString()
	order.CreatedAt = r.now().UTC()

	it := r.toItem(order)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceOrder{}, &storeerr.TransientError{Message: "marshal service order", Err: err}
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
		return entities.ServiceOrder{}, r.mapError(storeerr.OpCreate, it, err)
	}

	r.publish(realtime.ChangeInsert, order.ID)
	return order, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, r.mapError(storeerr.OpRead, nil, err)
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, storeerr.ErrNotFound
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, &storeerr.TransientError{Message: "unmarshal service order", Err: err}
	}
	return fromItem(it)
}

// Update rewrites every editable attribute. Status, created_at and scope are
// deliberately absent from the expression: the caller carries them over and
// the narrow status transition owns #status.
func (r *ServiceOrderDynamoRepository) Update(ctx context.Context, id string, order entities.ServiceOrder) error {
	it := r.toItem(order)

	creds, err := attributevalue.Marshal(it.IfoodCredentials)
	if err != nil {
		return &storeerr.TransientError{Message: "marshal ifood credentials", Err: err}
	}
	cert, err := attributevalue.Marshal(it.DigitalCertificate)
	if err != nil {
		return &storeerr.TransientError{Message: "marshal digital certificate", Err: err}
	}

	expr := "SET #client_name = :client_name, #cpf_cnpj = :cpf_cnpj, #contact = :contact, " +
		"#city = :city, #state = :state, #pedido_agora = :pedido_agora, #mobile = :mobile, " +
		"#ifood_integration = :ifood_integration, #ifood_credentials = :ifood_credentials, " +
		"#dll = :dll, #digital_certificate = :digital_certificate, " +
		"#remote_access_photo = :remote_access_photo, #remote_access_code = :remote_access_code, " +
		"#created_by = :created_by"

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String(expr),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":client_name":         &types.AttributeValueMemberS{Value: it.ClientName},
			":cpf_cnpj":            &types.AttributeValueMemberS{Value: it.CpfCnpj},
			":contact":             &types.AttributeValueMemberS{Value: it.Contact},
			":city":                &types.AttributeValueMemberS{Value: it.City},
			":state":               &types.AttributeValueMemberS{Value: it.State},
			":pedido_agora":        &types.AttributeValueMemberS{Value: it.PedidoAgora},
			":mobile":              &types.AttributeValueMemberS{Value: it.Mobile},
			":ifood_integration":   &types.AttributeValueMemberS{Value: it.IfoodIntegration},
			":ifood_credentials":   creds,
			":dll":                 &types.AttributeValueMemberS{Value: it.DLL},
			":digital_certificate": cert,
			":remote_access_photo": &types.AttributeValueMemberS{Value: it.RemoteAccessPhoto},
			":remote_access_code":  &types.AttributeValueMemberS{Value: it.RemoteAccessCode},
			":created_by":          &types.AttributeValueMemberS{Value: it.CreatedBy},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":                  "id",
			"#client_name":         "client_name",
			"#cpf_cnpj":            "cpf_cnpj",
			"#contact":             "contact",
			"#city":                "city",
			"#state":               "state",
			"#pedido_agora":        "pedido_agora",
			"#mobile":              "mobile",
			"#ifood_integration":   "ifood_integration",
			"#ifood_credentials":   "ifood_credentials",
			"#dll":                 "dll",
			"#digital_certificate": "digital_certificate",
			"#remote_access_photo": "remote_access_photo",
			"#remote_access_code":  "remote_access_code",
			"#created_by":          "created_by",
		},
	})
	if err != nil {
		return r.mapError(storeerr.OpUpdate, it, err)
	}

	r.publish(realtime.ChangeModify, id)
	return nil
}

func (r *ServiceOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.ServiceOrderStatus) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#status": "status",
		},
	})
	if err != nil {
		return r.mapError(storeerr.OpUpdate, map[string]string{"status": string(status)}, err)
	}

	r.publish(realtime.ChangeModify, id)
	return nil
}

func (r *ServiceOrderDynamoRepository) Remove(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return r.mapError(storeerr.OpDelete, nil, err)
	}

	r.publish(realtime.ChangeRemove, id)
	return nil
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	orders := make([]entities.ServiceOrder, 0)

	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(scopeIndexName),
			KeyConditionExpression: aws.String("#scope = :scope"),
			ExpressionAttributeNames: map[string]string{
				"#scope": "scope",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":scope": &types.AttributeValueMemberS{Value: r.scope},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, r.mapError(storeerr.OpListen, nil, err)
		}

		for _, raw := range out.Items {
			var it serviceOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, &storeerr.TransientError{Message: "unmarshal service order", Err: err}
			}
			order, err := fromItem(it)
			if err != nil {
				return nil, err
			}
			orders = append(orders, order)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	sortServiceOrders(orders)
	return orders, nil
}

// sortServiceOrders keeps created_at descending; equal timestamps fall back
// to id so the order is at least deterministic within one store.
func sortServiceOrders(orders []entities.ServiceOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
}

func (r *ServiceOrderDynamoRepository) publish(t realtime.ChangeType, id string) {
	if r.feed == nil {
		return
	}
	r.feed.Publish(realtime.ChangeEvent{Type: t, OrderID: id})
}

// mapError translates SDK failures into the storeerr taxonomy. DynamoDB
// reports authorization failures as the AccessDeniedException API code, not
// a modeled type.
func (r *ServiceOrderDynamoRepository) mapError(op storeerr.Operation, resource any, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return storeerr.ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDeniedException" {
		return &storeerr.PermissionError{
			Operation: op,
			Path:      r.Path(),
			Resource:  resource,
		}
	}

	return &storeerr.TransientError{Message: "dynamodb " + string(op) + " failed", Err: err}
}

func (r *ServiceOrderDynamoRepository) toItem(o entities.ServiceOrder) serviceOrderItem {
	it := serviceOrderItem{
		ID:                o.ID,
		Scope:             r.scope,
		ClientName:        o.ClientName,
		CpfCnpj:           o.CpfCnpj,
		Contact:           o.Contact,
		City:              o.City,
		State:             o.State,
		PedidoAgora:       string(o.PedidoAgora),
		Mobile:            string(o.Mobile),
		IfoodIntegration:  string(o.IfoodIntegration),
		DLL:               o.DLL,
		RemoteAccessPhoto: o.RemoteAccessPhoto,
		RemoteAccessCode:  o.RemoteAccessCode,
		CreatedBy:         o.CreatedBy,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if o.IfoodCredentials != nil {
		it.IfoodCredentials = &ifoodCredentialsItem{
			Email:    o.IfoodCredentials.Email,
			Password: o.IfoodCredentials.Password,
		}
	}
	if o.DigitalCertificate != nil {
		it.DigitalCertificate = &digitalCertificateItem{
			FileName:    o.DigitalCertificate.FileName,
			FileContent: o.DigitalCertificate.FileContent,
		}
	}
	return it
}

func fromItem(it serviceOrderItem) (entities.ServiceOrder, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		// A zero time would silently sink the order to the bottom of the list.
		return entities.ServiceOrder{}, &storeerr.TransientError{Message: "parse created_at", Err: err}
	}
	o := entities.ServiceOrder{
		ID:                it.ID,
		ClientName:        it.ClientName,
		CpfCnpj:           it.CpfCnpj,
		Contact:           it.Contact,
		City:              it.City,
		State:             it.State,
		PedidoAgora:       entities.SimNao(it.PedidoAgora),
		Mobile:            entities.SimNao(it.Mobile),
		IfoodIntegration:  entities.SimNao(it.IfoodIntegration),
		DLL:               it.DLL,
		RemoteAccessPhoto: it.RemoteAccessPhoto,
		RemoteAccessCode:  it.RemoteAccessCode,
		CreatedBy:         it.CreatedBy,
		Status:            entities.ServiceOrderStatus(it.Status),
		CreatedAt:         createdAt,
	}
	if it.IfoodCredentials != nil {
		o.IfoodCredentials = &entities.IfoodCredentials{
			Email:    it.IfoodCredentials.Email,
			Password: it.IfoodCredentials.Password,
		}
	}
	if it.DigitalCertificate != nil {
		o.DigitalCertificate = &entities.DigitalCertificate{
			FileName:    it.DigitalCertificate.FileName,
			FileContent: it.DigitalCertificate.FileContent,
		}
	}
	return o, nil
}
