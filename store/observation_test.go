package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/casecounts/schema"
)

var (
	mar1 = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	mar2 = time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)

	observationHubei = schema.RawObservation{
		ProvinceState: "Hubei",
		CountryRegion: "Mainland China",
		Confirmed:     66907,
		Deaths:        2761,
		Recovered:     31536,
	}
	observationKing = schema.RawObservation{
		ProvinceState: "King County, WA",
		CountryRegion: "US",
		Confirmed:     14,
		Deaths:        1,
	}
	observationCalifornia = schema.RawObservation{
		ProvinceState: "California",
		CountryRegion: "US",
		Confirmed:     53,
		Active:        53,
		HasActive:     true,
	}
)

type ObservationTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewObservationTestSuite(connURI, dbName string) *ObservationTestSuite {
	return &ObservationTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ObservationTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
}

func (s *ObservationTestSuite) SetupTest() {
	// make sure every test is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
}

// CleanMongoDB drop the whole test mongodb
func (s *ObservationTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *ObservationTestSuite) TearDownSuite() {
	_ = s.mongoClient.Disconnect(context.Background())
}

func (s *ObservationTestSuite) TestReplaceObservations() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	n, err := store.ReplaceObservations(mar1, []schema.RawObservation{observationHubei, observationKing})
	s.NoError(err)
	s.Equal(2, n)

	n, err = store.ReplaceObservations(mar1, []schema.RawObservation{observationHubei})
	s.NoError(err)
	s.Equal(1, n)

	count, err := s.testDatabase.Collection(schema.ObservationCollection).CountDocuments(context.Background(), map[string]interface{}{})
	s.NoError(err)
	s.Equal(int64(1), count, "rows of the date should be replaced")
}

func (s *ObservationTestSuite) TestObservationsByLevel() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	_, err := store.ReplaceObservations(mar2, []schema.RawObservation{observationCalifornia, observationHubei})
	s.NoError(err)
	_, err = store.ReplaceObservations(mar1, []schema.RawObservation{observationKing, observationHubei})
	s.NoError(err)

	rows, err := store.Observations(schema.LevelCountry, []string{"China", "Mainland China"})
	s.NoError(err)
	s.Len(rows, 2)
	s.Equal(mar1, rows[0].ReportDate, "rows should be ordered by date")
	s.Equal(mar2, rows[1].ReportDate, "rows should be ordered by date")

	rows, err = store.Observations(schema.LevelState, []string{"California"})
	s.NoError(err)
	s.Len(rows, 1)
	s.True(rows[0].HasActive)
	s.Equal(float64(53), rows[0].Active)

	latest, err := store.LatestObservationDate()
	s.NoError(err)
	s.Equal(mar2, latest)

	deleted, err := store.DeleteObservationsBefore(mar2)
	s.NoError(err)
	s.Equal(int64(2), deleted)
}

func (s *ObservationTestSuite) TestLatestObservationDateEmpty() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	_, err := store.LatestObservationDate()
	s.Equal(ErrNoObservation, err)
}

func (s *ObservationTestSuite) TestSaveAndGetSeries() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	unit := schema.Unit{Name: "Italy", Label: "Italy", Level: schema.LevelCountry}
	series := schema.Series{
		Unit:       unit,
		Population: 60550092,
		Points: []schema.DailySeriesPoint{
			{ReportDate: mar1, DayNo: 0},
			{ReportDate: mar2, DayNo: 1, Confirmed: 1694, DailyConfirmed: 1694, DailyCases: 847},
		},
	}
	s.NoError(store.SaveSeries(series))

	series.Points = series.Points[:1]
	s.NoError(store.SaveSeries(series))

	actual, err := store.GetSeries(schema.LevelCountry, "Italy")
	s.NoError(err)
	s.Len(actual.Points, 1, "series should be replaced")
	s.Equal(mar1, actual.Points[0].ReportDate)
	s.NotZero(actual.GeneratedAt)

	_, err = store.GetSeries(schema.LevelState, "Italy")
	s.Equal(ErrNoSeries, err)
}

func TestObservationTestSuite(t *testing.T) {
	conn := os.Getenv("CASECOUNTS_TEST_MONGO_CONN")
	if conn == "" {
		t.Skip("CASECOUNTS_TEST_MONGO_CONN is not set")
	}
	suite.Run(t, NewObservationTestSuite(conn, "test-db"))
}
