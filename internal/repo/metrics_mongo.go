package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaikazeem2001/inventory/internal/db"
	"github.com/shaikazeem2001/inventory/internal/models"
)

type MongoMetricsRepository struct {
	coll *mongo.Collection
}

func NewMongoMetricsRepository(mdb *mongo.Database) *MongoMetricsRepository {
	return &MongoMetricsRepository{coll: mdb.Collection(db.ProductsCollection)}
}

type categoryCount struct {
	Category string `bson:"_id"`
	Count    int    `bson:"count"`
}

type stockTotals struct {
	Total    int     `bson:"total"`
	LowStock int     `bson:"low_stock"`
	Value    float64 `bson:"value"`
}

func (r *MongoMetricsRepository) GetDashboardMetrics(ctx context.Context, lowStockThreshold int) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m := Metrics{Categories: map[string]int{}, TopProducts: []TopProduct{}}

	totalsPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "low_stock", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$lt", Value: bson.A{"$quantity", lowStockThreshold}}}, 1, 0}},
			}}}},
			{Key: "value", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$price", "$quantity"}},
			}}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, totalsPipeline)
	if err != nil {
		return Metrics{}, err
	}
	var totals []stockTotals
	if err := cur.All(ctx, &totals); err != nil {
		return Metrics{}, err
	}
	if len(totals) > 0 {
		m.TotalProducts = totals[0].Total
		m.LowStock = totals[0].LowStock
		m.TotalValue = totals[0].Value
	}

	categoryPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err = r.coll.Aggregate(ctx, categoryPipeline)
	if err != nil {
		return Metrics{}, err
	}
	var categories []categoryCount
	if err := cur.All(ctx, &categories); err != nil {
		return Metrics{}, err
	}
	for _, c := range categories {
		m.Categories[c.Category] = c.Count
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "quantity", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(topProductsCount)
	cur, err = r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return Metrics{}, err
	}
	var top []models.Product
	if err := cur.All(ctx, &top); err != nil {
		return Metrics{}, err
	}
	for _, p := range top {
		m.TopProducts = append(m.TopProducts, TopProduct{Name: p.Name, SKU: p.SKU, Quantity: p.Quantity})
	}
	return m, nil
}
