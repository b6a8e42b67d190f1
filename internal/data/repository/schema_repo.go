package repository

import (
	"context"

	"crime-report/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SchemaRepository exposes what the connected database looks like.
type SchemaRepository interface {
	Dialect() string
	Tables(ctx context.Context) ([]string, error)
}

type schemaRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSchemaRepository(db *gorm.DB, log *zap.Logger) SchemaRepository {
	return &schemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "schema")),
	}
}

func (r *schemaRepository) Dialect() string {
	return r.db.Dialector.Name()
}

func (r *schemaRepository) Tables(ctx context.Context) ([]string, error) {
	tables, err := database.Tables(r.db.WithContext(ctx))
	if err != nil {
		r.log.Error("Failed to list tables", zap.Error(err))
		return nil, err
	}

	return tables, nil
}
