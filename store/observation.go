package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/casecounts/schema"
)

var (
	ErrObservationFetch  = fmt.Errorf("fetch observation fail")
	ErrObservationDecode = fmt.Errorf("decode observation fail")
	ErrNoObservation     = fmt.Errorf("no observation")
)

type ObservationStore interface {
	// ReplaceObservations replaces every stored row of a report date
	ReplaceObservations(date time.Time, rows []schema.RawObservation) (int, error)
	// Observations returns the rows of the given keys at a level, ordered by report date
	Observations(level schema.UnitLevel, keys []string) ([]schema.RawObservation, error)
	// LatestObservationDate is the last stored report date
	LatestObservationDate() (time.Time, error)
	DeleteObservationsBefore(date time.Time) (int64, error)
}

func levelField(level schema.UnitLevel) string {
	if level == schema.LevelState {
		return "province_state"
	}
	return "country_region"
}

func (m *mongoDB) ReplaceObservations(date time.Time, rows []schema.RawObservation) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	c := m.collection(schema.ObservationCollection)
	if _, err := c.DeleteMany(ctx, bson.M{"report_date": date}); err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "date": date, "error": err}).Error("delete observations")
		return 0, err
	}

	if len(rows) == 0 {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "date": date}).Debug("no observation to insert")
		return 0, nil
	}

	data := make([]interface{}, len(rows))
	for i, r := range rows {
		r.ReportDate = date
		data[i] = r
	}

	opts := options.InsertMany().SetOrdered(false)
	res, err := c.InsertMany(ctx, data, opts)
	if err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "date": date, "error": err}).Error("insert observations")
		return 0, err
	}

	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "date": date, "records": len(res.InsertedIDs)}).Debug("insert observations")
	return len(res.InsertedIDs), nil
}

func (m *mongoDB) Observations(level schema.UnitLevel, keys []string) ([]schema.RawObservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	filter := bson.M{levelField(level): bson.M{"$in": keys}}
	opts := options.Find().SetSort(bson.M{"report_date": 1})
	cur, err := m.collection(schema.ObservationCollection).Find(ctx, filter, opts)
	if nil != err {
		log.WithField("prefix", mongoLogPrefix).Errorf("%v: %s", ErrObservationFetch, err)
		return nil, ErrObservationFetch
	}
	defer cur.Close(ctx)

	results := make([]schema.RawObservation, 0)
	for cur.Next(ctx) {
		var o schema.RawObservation
		if errDecode := cur.Decode(&o); errDecode != nil {
			log.WithField("prefix", mongoLogPrefix).Errorf("observation decode with error: %s", errDecode)
			return nil, ErrObservationDecode
		}
		o.ReportDate = o.ReportDate.UTC()
		results = append(results, o)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "level": level, "keys": keys, "records": len(results)}).Debug("query observations")
	return results, nil
}

func (m *mongoDB) LatestObservationDate() (time.Time, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.M{"report_date": -1}).SetProjection(bson.M{"report_date": 1})
	var latest schema.RawObservation
	if err := m.collection(schema.ObservationCollection).FindOne(ctx, bson.M{}, opts).Decode(&latest); err != nil {
		if err == mongo.ErrNoDocuments {
			return time.Time{}, ErrNoObservation
		}
		return time.Time{}, err
	}
	return latest.ReportDate.UTC(), nil
}

func (m *mongoDB) DeleteObservationsBefore(date time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	filter := bson.M{"report_date": bson.D{{Key: "$lt", Value: date}}}
	res, err := m.collection(schema.ObservationCollection).DeleteMany(ctx, filter)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Warnf("delete observations with error: %s", err)
		return 0, err
	}
	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "records": res.DeletedCount}).Debug("delete observations")
	return res.DeletedCount, nil
}
