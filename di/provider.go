package di

import (
	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/filestore"
	"inn/infras/otel"
	"inn/infras/postgres"
	bookingRepository "inn/internal/domains/booking/repository"
	inventoryRepository "inn/internal/domains/inventory/repository"
	"inn/shared/constant"
)

// Storage bundles the persistence ports behind the configured backend, so
// only the selected backend gets constructed.
type Storage struct {
	Inventory inventoryRepository.Inventory
	Booking   bookingRepository.Booking
}

func NewStorage(cfg *config.Config, ot otel.Otel) Storage {
	if cfg.Store.Backend == constant.StoreBackendFile {
		store, err := filestore.New(cfg)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.FilePath).Msg("Failed to initialize file store")
		}

		return Storage{
			Inventory: inventoryRepository.NewFile(store, ot),
			Booking:   bookingRepository.NewFile(store, ot),
		}
	}

	db := postgres.New(cfg)

	return Storage{
		Inventory: inventoryRepository.NewPostgres(db, ot),
		Booking:   bookingRepository.NewPostgres(db, ot),
	}
}

func ProvideInventoryRepository(storage Storage) inventoryRepository.Inventory {
	return storage.Inventory
}

func ProvideBookingRepository(storage Storage) bookingRepository.Booking {
	return storage.Booking
}
