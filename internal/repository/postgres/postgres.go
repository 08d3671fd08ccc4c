package postgres

import (
	"database/sql"

	"dresscircle-checkout/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DraftOrderRepository
	repository.OrderRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		DraftOrderRepository: NewDraftOrderRepository(db),
		OrderRepository:      NewOrderRepository(db),
	}
}
