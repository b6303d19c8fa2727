package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"gearshare-booking-engine/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.ReservationRepository
	repository.CalendarRepository
	repository.ItemRepository
	repository.OrderRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ReservationRepository:  NewReservationRepository(db),
		CalendarRepository:     NewCalendarRepository(db),
		ItemRepository:         NewItemRepository(db),
		OrderRepository:        NewOrderRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
