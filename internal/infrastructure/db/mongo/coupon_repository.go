package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modacart/commerce-api/internal/core/domain"
)

const couponCollection = "coupons"

type MongoCouponRepository struct {
	coll *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *MongoCouponRepository {
	return &MongoCouponRepository{coll: db.Collection(couponCollection)}
}

type mongoCoupon struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Code               string             `bson:"code"`
	DiscountPercentage int                `bson:"discount_percentage"`
	ExpirationDate     time.Time          `bson:"expiration_date"`
	IsActive           bool               `bson:"is_active"`
	UserID             primitive.ObjectID `bson:"user_id"`
}

func (r *MongoCouponRepository) Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	uid, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := mongoCoupon{
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		ExpirationDate:     c.ExpirationDate.UTC(),
		IsActive:           c.IsActive,
		UserID:             uid,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert coupon: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainCoupon(doc), nil
}

func (r *MongoCouponRepository) FindActiveByUser(ctx context.Context, userID string) (*domain.Coupon, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}
	return r.findOne(ctx, bson.M{"user_id": uid, "is_active": true})
}

func (r *MongoCouponRepository) FindActiveByCode(ctx context.Context, code, userID string) (*domain.Coupon, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}
	return r.findOne(ctx, bson.M{"code": code, "user_id": uid, "is_active": true})
}

func (r *MongoCouponRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, domain.ErrUserNotFound
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": uid})
	if err != nil {
		return false, fmt.Errorf("count coupons: %w", err)
	}
	return n > 0, nil
}

func (r *MongoCouponRepository) Deactivate(ctx context.Context, code, userID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrCouponNotFound
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"code": code, "user_id": uid},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return fmt.Errorf("deactivate coupon: %w", err)
	}
	return nil
}

func (r *MongoCouponRepository) findOne(ctx context.Context, filter bson.M) (*domain.Coupon, error) {
	var mc mongoCoupon
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("find coupon: %w", err)
	}
	return toDomainCoupon(mc), nil
}

func toDomainCoupon(mc mongoCoupon) *domain.Coupon {
	return &domain.Coupon{
		ID:                 mc.ID.Hex(),
		Code:               mc.Code,
		DiscountPercentage: mc.DiscountPercentage,
		ExpirationDate:     mc.ExpirationDate,
		IsActive:           mc.IsActive,
		UserID:             mc.UserID.Hex(),
	}
}
