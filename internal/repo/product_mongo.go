package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaikazeem2001/inventory/internal/db"
	"github.com/shaikazeem2001/inventory/internal/models"
)

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(mdb *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: mdb.Collection(db.ProductsCollection)}
}

func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	prepareProduct(&p, time.Now().UTC())

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, err
	}
	return p, nil
}

// InsertMany issues one unordered insert. Write errors reported by the server reject single
// documents; anything else is a failure of the whole call.
func (r *MongoProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if len(products) == 0 {
		return []models.Product{}, nil
	}

	now := time.Now().UTC()
	prepared := make([]models.Product, len(products))
	docs := make([]any, len(products))
	for i, p := range products {
		prepareProduct(&p, now)
		prepared[i] = p
		docs[i] = p
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return prepared, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 || bwe.WriteConcernError != nil {
		return nil, fmt.Errorf("failed to insert products: %w", err)
	}

	rejected := make(map[int]bool, len(bwe.WriteErrors))
	for _, we := range bwe.WriteErrors {
		rejected[we.Index] = true
	}

	inserted := make([]models.Product, 0, len(prepared)-len(rejected))
	for i, p := range prepared {
		if !rejected[i] {
			inserted = append(inserted, p)
		}
	}
	return inserted, nil
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProductRepository) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	return r.findOne(ctx, bson.M{"sku": sku})
}

func (r *MongoProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"sku":         p.SKU,
		"category":    p.Category,
		"price":       p.Price,
		"quantity":    p.Quantity,
		"description": p.Description,
		"image_url":   p.ImageURL,
		"updated_at":  p.UpdatedAt,
	}}

	var updated models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Product{}, ErrProductNotFound
	case mongo.IsDuplicateKeyError(err):
		return models.Product{}, ErrDuplicatedValueUnique
	case err != nil:
		return models.Product{}, err
	}
	return updated, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func mongoFilter(pf ProductFilter) bson.M {
	filter := bson.M{}
	if pf.Keyword != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(pf.Keyword), "$options": "i"}
	}
	if pf.Category != "" {
		filter["category"] = pf.Category
	}

	price := bson.M{}
	if pf.MinPrice != nil {
		price["$gte"] = *pf.MinPrice
	}
	if pf.MaxPrice != nil {
		price["$lte"] = *pf.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	qty := bson.M{}
	if pf.MinQty != nil {
		qty["$gte"] = *pf.MinQty
	}
	if pf.MaxQty != nil {
		qty["$lte"] = *pf.MaxQty
	}
	if len(qty) > 0 {
		filter["quantity"] = qty
	}
	return filter
}

func mongoSort(sort string) bson.D {
	switch sort {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	case SortQuantityAsc:
		return bson.D{{Key: "quantity", Value: 1}, {Key: "_id", Value: 1}}
	case SortQuantityDesc:
		return bson.D{{Key: "quantity", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
}

func (r *MongoProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := mongoFilter(pf)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(mongoSort(pf.Sort))
	if pf.Offset != nil && *pf.Offset > 0 {
		opts.SetSkip(int64(*pf.Offset))
	}
	if pf.Limit != nil && *pf.Limit > 0 {
		opts.SetLimit(int64(*pf.Limit))
	}

	products, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}
