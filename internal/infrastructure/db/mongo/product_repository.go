package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modacart/commerce-api/internal/core/domain"
)

const productCollection = "products"

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	Category    string             `bson:"category"`
	IsFeatured  bool               `bson:"is_featured"`
}

func (r *MongoProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc := mongoProduct{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		IsFeatured:  p.IsFeatured,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	out := toDomainProduct(doc)
	return &out, nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	out := toDomainProduct(mp)
	return &out, nil
}

func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *MongoProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.findMany(ctx, bson.M{"category": category})
}

func (r *MongoProductRepository) FindFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.findMany(ctx, bson.M{"is_featured": true})
}

// Sample returns up to n random products using the $sample aggregation stage.
func (r *MongoProductRepository) Sample(ctx context.Context, n int) ([]domain.Product, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: n}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("sample products: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (r *MongoProductRepository) SetFeatured(ctx context.Context, id string, featured bool) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_featured": featured}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	out := toDomainProduct(mp)
	return &out, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *MongoProductRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]domain.Product, error) {
	products := []domain.Product{}
	for cursor.Next(ctx) {
		var mp mongoProduct
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, toDomainProduct(mp))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func toDomainProduct(mp mongoProduct) domain.Product {
	return domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		Price:       mp.Price,
		Image:       mp.Image,
		Category:    mp.Category,
		IsFeatured:  mp.IsFeatured,
	}
}
