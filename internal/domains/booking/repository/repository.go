package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"inn/internal/domains/booking/model"
	gDto "inn/shared/dto"
)

// Booking is the persistence port for booking records. Insert appends a new
// record; GetAll returns records newest first, optionally filtered by room
// type and paginated.
type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	GetAll(ctx context.Context, params gDto.QueryParams, roomType string) ([]model.Booking, error)
	Count(ctx context.Context, roomType string) (int, error)
}
