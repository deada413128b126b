package config

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"real-time-messenger/config/common"
	"real-time-messenger/config/logger"
	"real-time-messenger/repository"
)

type DBConfig struct {
	*gorm.DB
	*logger.AppLogger
}

func NewDB(config *common.Config, log *logger.AppLogger) (*DBConfig, error) {
	db, err := initDatabase(config, log)
	if err != nil {
		return nil, err
	}
	return &DBConfig{DB: db, AppLogger: log}, nil
}

func (db *DBConfig) GetDB() *gorm.DB {
	return db.DB
}

// dialector picks the gorm driver from DB_DRIVER. DB_DSN, when set, is used verbatim.
func dialector(cfg *common.Config) (gorm.Dialector, error) {
	dbHost, dbUser, dbPassword, dbName, dbPort := cfg.GetDatabaseConfig()
	dsn := cfg.GetDatabaseDSN()

	switch driver := cfg.GetDatabaseDriver(); driver {
	case "postgres":
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				dbHost, dbUser, dbPassword, dbName, dbPort,
			)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				dbUser, dbPassword, dbHost, dbPort, dbName,
			)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		if dsn == "" {
			dsn = dbName + ".db?_fk=1"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func initDatabase(cfg *common.Config, log *logger.AppLogger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := repository.Open(dial, gormlogger.Default.LogMode(gormlogger.Warn))
	if err != nil {
		log.Http.Error.Error().Err(err).Msg("failed to connect to database")
		return nil, err
	}
	log.Http.Info.Info().Str("driver", cfg.GetDatabaseDriver()).Msg("Connection Opened to Database")

	conn, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dial.Name() == "sqlite" {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxIdleConns(10)
		conn.SetMaxOpenConns(100)
	}
	conn.SetConnMaxLifetime(time.Second * time.Duration(300))
	return db, nil
}
