package postgres

import (
	"log"
	"time"

	"github.com/essomba/schoolhub/config"
	"github.com/essomba/schoolhub/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres, applies pool settings and migrates the schema.
// The returned handle is injected into every repository; Close belongs to
// the process shutdown path.
func Open(cfg *config.Database) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseURL()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Level{},
		&model.Class{},
		&model.Course{},
		&model.AcademicCalendar{},
		&model.Term{},
		&model.SchoolEvent{},
		&model.Holiday{},
		&model.Admission{},
		&model.FormerSchool{},
		&model.BehaviorReport{},
		&model.DisciplinaryAction{},
		&model.Extracurricular{},
		&model.Notification{},
		&model.MomoTransaction{},
		&model.MomoAPIUser{},
	); err != nil {
		return nil, err
	}

	log.Println("Database connected and tables migrated successfully")

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// applyPagination applies offset/limit unless fetchAll was requested.
func applyPagination(query *gorm.DB, filter model.ListFilter) *gorm.DB {
	if filter.FetchAll {
		return query
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return query.Offset(filter.Offset()).Limit(limit)
}
