package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/fitquest/fitquest/models"
)

var db *gorm.DB

// InitDatabase opens the configured store (embedded sqlite by default, MySQL
// when a DSN or driver is configured), runs migrations and seeds the catalog.
func InitDatabase() *gorm.DB {
	if db != nil {
		return db
	}

	cfg := Get()

	// Keep GORM logging aligned with the app log level and quiet about
	// expected not-found reads.
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var err error
	db, err = gorm.Open(openDialector(cfg), &gorm.Config{
		Logger:                                   gLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("auto migration failed: %v", err)
	}
	if err := Seed(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	return db
}

func openDialector(cfg AppConfig) gorm.Dialector {
	if cfg.DBDriver == "mysql" || cfg.DatabaseURI != "" {
		dsn := cfg.DatabaseURI
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBName,
			)
		}
		return mysql.Open(dsn)
	}
	return sqlite.Open(cfg.DBPath)
}

// Migrate creates or updates all application tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.LeaderboardEntry{},
		&models.ProgressRecord{},
		&models.Reward{},
		&models.UserReward{},
		&models.Group{},
		&models.Message{},
		&models.PageView{},
	)
}

// Seed inserts the static catalog, the chat room and a baseline demo account.
// Every insert ignores conflicts so repeated boots leave existing rows alone.
func Seed(db *gorm.DB) error {
	challenges := []models.Challenge{
		{ID: 1, Name: "Run 5km", Description: "Complete a 5km run", Points: 50},
		{ID: 2, Name: "100 Push-ups", Description: "Do 100 push-ups", Points: 30},
		{ID: 3, Name: "Drink 2L Water", Description: "Stay hydrated!", Points: 20},
		{ID: 4, Name: "Cycle 10km", Description: "Complete a 10km cycling ride", Points: 40},
		{ID: 5, Name: "15 Minute HIIT", Description: "Complete a 15-minute high-intensity interval training session", Points: 35},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&challenges).Error; err != nil {
		return err
	}

	rewards := []models.Reward{
		{ID: 1, Name: "5K Runner Badge", Description: "Awarded for completing a 5km run", Image: "/static/images/badge1.png", PointsRequired: 50},
		{ID: 2, Name: "Push-up Pro", Description: "Awarded for completing 100 push-ups", Image: "/static/images/badge2.png", PointsRequired: 30},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rewards).Error; err != nil {
		return err
	}

	room := models.Group{ID: models.DefaultGroupID, Name: "Fitness Buddies"}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&room).Error; err != nil {
		return err
	}

	// Demo account; password "1234" is hashed like any other credential.
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "john@example.com").Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		demo := models.User{ID: 1, Username: "JohnDoe", Email: "john@example.com", PasswordHash: string(hash)}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&demo).Error; err != nil {
			return err
		}
	}

	return nil
}

// toGormLogLevel maps application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "warn", "info", "":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

// DB provides access to the initialized gorm instance.
func DB() *gorm.DB {
	if db == nil {
		log.Fatal("database not initialized, call InitDatabase first")
	}
	return db
}
