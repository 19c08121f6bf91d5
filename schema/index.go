package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexObservationCollection())
	panicIfError(m.IndexSeriesCollection())
}

func (m *MongoDBIndexer) IndexObservationCollection() error {
	if err := m.createIndex(ObservationCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "report_date", Value: 1},
			{Key: "country_region", Value: 1},
			{Key: "province_state", Value: 1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(ObservationCollection, mongo.IndexModel{
		Keys: bson.M{
			"province_state": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(ObservationCollection, mongo.IndexModel{
		Keys: bson.M{
			"country_region": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexSeriesCollection() error {
	return m.createIndex(SeriesCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "unit.level", Value: 1},
			{Key: "unit.name", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
}
