package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"inn/infras/filestore"
	"inn/infras/otel"
	"inn/internal/domains/booking/model"
	"inn/shared/constant"
	gDto "inn/shared/dto"
)

type fileImpl struct {
	store *filestore.Store
	otel  otel.Otel
}

func NewFile(store *filestore.Store, otel otel.Otel) Booking {
	return &fileImpl{
		store: store,
		otel:  otel,
	}
}

func (repo *fileImpl) Insert(ctx context.Context, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Insert")
	defer scope.End()

	raw, err := json.Marshal(booking)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to encode data (%s): %w", model.EntityName, err)
	}

	err = repo.store.Update(ctx, func(doc *filestore.Document) error {
		doc.Bookings = append(doc.Bookings, raw)

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *fileImpl) GetAll(ctx context.Context, params gDto.QueryParams, roomType string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetAll")
	defer scope.End()

	bookings, err := repo.load(ctx, roomType)
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	if params.Limit > 0 {
		offset := 0
		if params.Page > 0 {
			offset = (params.Page - 1) * params.Limit
		}

		if offset >= len(bookings) {
			return []model.Booking{}, nil
		}

		end := min(offset+params.Limit, len(bookings))

		return bookings[offset:end], nil
	}

	return bookings, nil
}

func (repo *fileImpl) Count(ctx context.Context, roomType string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Count")
	defer scope.End()

	bookings, err := repo.load(ctx, roomType)
	if err != nil {
		scope.TraceError(err)

		return 0, err
	}

	return len(bookings), nil
}

func (repo *fileImpl) load(ctx context.Context, roomType string) ([]model.Booking, error) {
	var bookings []model.Booking

	err := repo.store.View(ctx, func(doc *filestore.Document) error {
		for _, raw := range doc.Bookings {
			var booking model.Booking
			if err := json.Unmarshal(raw, &booking); err != nil {
				return fmt.Errorf("failed to decode data (%s): %w", model.EntityName, err)
			}

			if roomType != constant.Empty && booking.RoomType != roomType {
				continue
			}

			bookings = append(bookings, booking)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}
