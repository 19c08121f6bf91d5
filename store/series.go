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
	ErrNoSeries = fmt.Errorf("no series")
)

type SeriesStore interface {
	SaveSeries(s schema.Series) error
	GetSeries(level schema.UnitLevel, name string) (*schema.Series, error)
}

func seriesFilter(level schema.UnitLevel, name string) bson.M {
	return bson.M{"unit.level": level, "unit.name": name}
}

// SaveSeries replaces the stored series of the same unit
func (m *mongoDB) SaveSeries(s schema.Series) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if s.GeneratedAt == 0 {
		s.GeneratedAt = time.Now().UTC().Unix()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := m.collection(schema.SeriesCollection).ReplaceOne(ctx, seriesFilter(s.Unit.Level, s.Unit.Name), s, opts)
	if err != nil {
		if errs, hasErr := err.(mongo.WriteException); hasErr {
			if 1 == len(errs.WriteErrors) && DuplicateKeyCode == errs.WriteErrors[0].Code {
				log.WithField("prefix", mongoLogPrefix).Warnf("series update with error: %s", err)
				return nil
			}
		}
		return err
	}

	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "unit": s.Unit.Name, "points": len(s.Points)}).Debug("save series")
	return nil
}

func (m *mongoDB) GetSeries(level schema.UnitLevel, name string) (*schema.Series, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var s schema.Series
	err := m.collection(schema.SeriesCollection).FindOne(ctx, seriesFilter(level, name)).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoSeries
	}
	if err != nil {
		return nil, err
	}

	for i := range s.Points {
		s.Points[i].ReportDate = s.Points[i].ReportDate.UTC()
	}
	return &s, nil
}
