package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

const orderCollection = "orders"

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrderItem struct {
	ProductID primitive.ObjectID `bson:"product"`
	Quantity  int                `bson:"quantity"`
	Price     float64            `bson:"price"`
}

type mongoOrder struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"user"`
	Items           []mongoOrderItem   `bson:"products"`
	TotalAmount     float64            `bson:"total_amount"`
	StripeSessionID string             `bson:"stripe_session_id"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (r *MongoOrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	uid, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	items := make([]mongoOrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		pid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProductID, item.ProductID)
		}
		items = append(items, mongoOrderItem{ProductID: pid, Quantity: item.Quantity, Price: item.Price})
	}

	doc := mongoOrder{
		UserID:          uid,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		StripeSessionID: o.StripeSessionID,
		CreatedAt:       o.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOrderExists
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainOrder(doc), nil
}

func (r *MongoOrderRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"stripe_session_id": sessionID}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toDomainOrder(mo), nil
}

// Totals aggregates sales count and revenue over the whole collection.
// Empty collection yields zeroes.
func (r *MongoOrderRepository) Totals(ctx context.Context) (ports.SalesTotals, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_sales", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
	})
	if err != nil {
		return ports.SalesTotals{}, fmt.Errorf("aggregate totals: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TotalSales   int64   `bson:"total_sales"`
		TotalRevenue float64 `bson:"total_revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return ports.SalesTotals{}, fmt.Errorf("decode totals: %w", err)
	}
	if len(rows) == 0 {
		return ports.SalesTotals{}, nil
	}
	return ports.SalesTotals{TotalSales: rows[0].TotalSales, TotalRevenue: rows[0].TotalRevenue}, nil
}

// DailySales groups orders in [start, end] by calendar day, ascending.
// Only days with activity are returned.
func (r *MongoOrderRepository) DailySales(ctx context.Context, start, end time.Time) ([]ports.DailySalesRow, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "created_at", Value: bson.D{
				{Key: "$gte", Value: start.UTC()},
				{Key: "$lte", Value: end.UTC()},
			}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "sales", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sales: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date    string  `bson:"_id"`
		Sales   int64   `bson:"sales"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode daily sales: %w", err)
	}

	out := make([]ports.DailySalesRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.DailySalesRow{Date: row.Date, Sales: row.Sales, Revenue: row.Revenue})
	}
	return out, nil
}

// EnsureIndexes creates the unique stripe session index, the enforcement
// point for the one-order-per-session guarantee.
func (r *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "stripe_session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toDomainOrder(mo mongoOrder) *domain.Order {
	items := make([]domain.OrderItem, 0, len(mo.Items))
	for _, item := range mo.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return &domain.Order{
		ID:              mo.ID.Hex(),
		UserID:          mo.UserID.Hex(),
		Items:           items,
		TotalAmount:     mo.TotalAmount,
		StripeSessionID: mo.StripeSessionID,
		CreatedAt:       mo.CreatedAt,
	}
}
