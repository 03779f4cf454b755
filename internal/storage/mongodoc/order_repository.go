package mongodoc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

const (
	ordersCollection = "orders"
	opTimeout        = 5 * time.Second
)

// Денежные значения сериализуются строками: bson не умеет хранить
// decimal.Decimal без потери точности.
type orderLineDocument struct {
	Quantity  int    `bson:"quantity"`
	ProductID string `bson:"productId"`
	UnitPrice string `bson:"unitPrice"`
	LineTotal string `bson:"lineTotal"`
}

type clientSnapshotDocument struct {
	ID       int64  `bson:"id"`
	Username string `bson:"username"`
	Name     string `bson:"name"`
	Email    string `bson:"email"`
	Address  string `bson:"address"`
	Phone    string `bson:"phone"`
}

type orderDocument struct {
	ID          string                 `bson:"_id"`
	UserID      int64                  `bson:"userId"`
	Client      clientSnapshotDocument `bson:"client"`
	Lines       []orderLineDocument    `bson:"lines"`
	TotalItems  int                    `bson:"totalItems"`
	TotalAmount string                 `bson:"totalAmount"`
	CreatedAt   time.Time              `bson:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt"`
	IsDeleted   bool                   `bson:"isDeleted"`
}

func toOrderDocument(o domain.Order) orderDocument {
	lines := make([]orderLineDocument, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, orderLineDocument{
			Quantity:  line.Quantity,
			ProductID: line.ProductID.String(),
			UnitPrice: line.UnitPrice.String(),
			LineTotal: line.LineTotal.String(),
		})
	}
	return orderDocument{
		ID:     o.ID,
		UserID: o.UserID,
		Client: clientSnapshotDocument{
			ID:       o.Client.ID,
			Username: o.Client.Username,
			Name:     o.Client.Name,
			Email:    o.Client.Email,
			Address:  o.Client.Address,
			Phone:    o.Client.Phone,
		},
		Lines:       lines,
		TotalItems:  o.TotalItems,
		TotalAmount: o.TotalAmount.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		IsDeleted:   o.IsDeleted,
	}
}

func fromOrderDocument(doc orderDocument) (domain.Order, error) {
	totalAmount, err := decimal.NewFromString(doc.TotalAmount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse order total amount %q: %w", doc.TotalAmount, err)
	}

	lines := make([]domain.OrderLine, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse order line product id %q: %w", line.ProductID, err)
		}
		unitPrice, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse order line unit price %q: %w", line.UnitPrice, err)
		}
		lineTotal, err := decimal.NewFromString(line.LineTotal)
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse order line total %q: %w", line.LineTotal, err)
		}
		lines = append(lines, domain.OrderLine{
			Quantity:  line.Quantity,
			ProductID: productID,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	return domain.Order{
		ID:     doc.ID,
		UserID: doc.UserID,
		Client: domain.ClientSnapshot{
			ID:       doc.Client.ID,
			Username: doc.Client.Username,
			Name:     doc.Client.Name,
			Email:    doc.Client.Email,
			Address:  doc.Client.Address,
			Phone:    doc.Client.Phone,
		},
		Lines:       lines,
		TotalItems:  doc.TotalItems,
		TotalAmount: totalAmount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		IsDeleted:   doc.IsDeleted,
	}, nil
}

var orderSortFields = map[string]string{
	"id":         "_id",
	"userId":     "userId",
	"totalItems": "totalItems",
	"createdAt":  "createdAt",
	"updatedAt":  "updatedAt",
}

type orderRepository struct {
	col *mongo.Collection
}

var _ domain.OrderRepository = (*orderRepository)(nil)

// NewOrderRepository создаёт MongoDB-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{col: store.Database().Collection(ordersCollection)}
}

func (r *orderRepository) List(ctx context.Context, page pagination.Request) ([]domain.Order, int, error) {
	return r.list(ctx, bson.D{}, page)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.Order, int, error) {
	return r.list(ctx, bson.D{{Key: "userId", Value: userID}}, page)
}

func (r *orderRepository) list(ctx context.Context, match bson.D, page pagination.Request) ([]domain.Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	field, ok := orderSortFields[page.SortBy]
	if !ok {
		field = "_id"
	}
	direction := 1
	if page.Desc() {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: direction}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Size))

	cursor, err := r.col.Find(ctx, match, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.Order, 0, page.Size)
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode order: %w", err)
		}
		order, err := fromOrderDocument(doc)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	return items, int(total), nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc orderDocument
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("find order: %w", err)
	}

	return fromOrderDocument(doc)
}

func (r *orderRepository) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toOrderDocument(o)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Order{}, fmt.Errorf("order %s: %w", o.ID, domain.ErrConflict)
		}
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return o, nil
}

func (r *orderRepository) Update(ctx context.Context, o domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: o.ID}}, toOrderDocument(o))
	if err != nil {
		return domain.Order{}, fmt.Errorf("replace order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	return o, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx,
		bson.D{{Key: "userId", Value: userID}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count orders by user: %w", err)
	}

	return count > 0, nil
}
