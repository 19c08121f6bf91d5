package store

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/schema"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("create: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}

type PopulationTestSuite struct {
	suite.Suite
	connURI string
	ormDB   *gorm.DB
}

func NewPopulationTestSuite(connURI string) *PopulationTestSuite {
	return &PopulationTestSuite{connURI: connURI}
}

func (s *PopulationTestSuite) SetupSuite() {
	db, err := gorm.Open("postgres", s.connURI)
	if err != nil {
		s.T().Fatalf("open postgres with error: %s", err)
	}
	s.ormDB = db

	s.NoError(s.ormDB.DropTableIfExists(&schema.PopulationFigure{}).Error)
	s.NoError(s.ormDB.AutoMigrate(&schema.PopulationFigure{}).Error)
}

func (s *PopulationTestSuite) TearDownSuite() {
	_ = s.ormDB.Close()
}

func (s *PopulationTestSuite) TestImportAndLookup() {
	store := NewPopulationStore(s.ormDB)

	n, err := store.ImportPopulation([]schema.PopulationFigure{
		{Source: schema.PopulationSourceUS, Name: "Georgia", Population: 10617000},
		{Source: schema.PopulationSourceWorld, Name: "Georgia", Population: 3996765},
	})
	s.NoError(err)
	s.Equal(2, n)

	n, err = store.ImportPopulation([]schema.PopulationFigure{
		{Source: schema.PopulationSourceUS, Name: "Georgia", Population: 10617423},
	})
	s.NoError(err)
	s.Equal(1, n)

	r, err := store.LookupPopulation(schema.LevelState, "georgia")
	s.NoError(err)
	s.Equal(population.Found, r.Status)
	s.Equal(float64(10617423), r.Population, "population should be updated")

	r, err = store.LookupPopulation(schema.LevelCountry, "Georgia")
	s.NoError(err)
	s.Equal(float64(3996765), r.Population)

	r, err = store.LookupPopulation(schema.LevelCountry, "Atlantis")
	s.NoError(err)
	s.Equal(population.NotFound, r.Status)
}

func TestPopulationTestSuite(t *testing.T) {
	conn := os.Getenv("CASECOUNTS_TEST_ORM_CONN")
	if conn == "" {
		t.Skip("CASECOUNTS_TEST_ORM_CONN is not set")
	}
	suite.Run(t, NewPopulationTestSuite(conn))
}
