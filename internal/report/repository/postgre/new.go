package postgre

import (
	"time"

	"report-srv/internal/report/repository"
	"report-srv/pkg/log"

	"gorm.io/gorm"
)

// deleteBatchSize bounds the IN list of a single hard-delete statement.
const deleteBatchSize = 500

type implRepository struct {
	db    *gorm.DB
	l     log.Logger
	clock func() time.Time
}

func New(db *gorm.DB, l log.Logger) repository.PostgresRepository {
	return &implRepository{
		db: db,
		l:  l,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}
