package store

import (
	"errors"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/utils"
)

const (
	ormLogPrefix        = "orm"
	uniqueViolationCode = "23505"
)

// PopulationStore keeps the population tables in postgres
type PopulationStore interface {
	Pinger
	ImportPopulation(figures []schema.PopulationFigure) (int, error)
	LookupPopulation(level schema.UnitLevel, name string) (population.Result, error)
}

type PopulationDB struct {
	ormDB *gorm.DB
}

func NewPopulationStore(ormDB *gorm.DB) *PopulationDB {
	return &PopulationDB{ormDB: ormDB}
}

// Ping is to check the storage health status
func (s *PopulationDB) Ping() error {
	return s.ormDB.DB().Ping()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}

// ImportPopulation inserts figures and updates the population of the
// ones already stored for the same source and unit key
func (s *PopulationDB) ImportPopulation(figures []schema.PopulationFigure) (int, error) {
	count := 0
	for _, f := range figures {
		if f.UnitKey == "" {
			f.UnitKey = utils.UnitKey(f.Name)
		}

		err := s.ormDB.Create(&f).Error
		if isUniqueViolation(err) {
			err = s.ormDB.Model(&schema.PopulationFigure{}).
				Where("source = ? AND unit_key = ?", f.Source, f.UnitKey).
				Update("population", f.Population).Error
		}
		if err != nil {
			log.WithFields(log.Fields{"prefix": ormLogPrefix, "name": f.Name, "error": err}).Error("import population")
			return count, err
		}
		count++
	}
	return count, nil
}

func sourceOf(level schema.UnitLevel) string {
	if level == schema.LevelState {
		return schema.PopulationSourceUS
	}
	return schema.PopulationSourceWorld
}

func (s *PopulationDB) LookupPopulation(level schema.UnitLevel, name string) (population.Result, error) {
	var figures []schema.PopulationFigure
	err := s.ormDB.
		Where("source = ? AND unit_key = ?", sourceOf(level), utils.UnitKey(name)).
		Limit(2).
		Find(&figures).Error
	if err != nil {
		return population.Result{}, err
	}
	return population.Resolve(figures), nil
}
