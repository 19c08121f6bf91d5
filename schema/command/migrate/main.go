package main

import (
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/casecounts/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("casecounts")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	if conn := viper.GetString("orm.conn"); conn != "" {
		db, err := gorm.Open("postgres", conn)
		if err != nil {
			panic(err)
		}
		defer db.Close()

		if err := db.AutoMigrate(&schema.PopulationFigure{}).Error; err != nil {
			panic(err)
		}
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}
