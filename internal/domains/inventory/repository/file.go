package repository

import (
	"context"
	"fmt"
	"maps"

	"inn/infras/filestore"
	"inn/infras/otel"
	"inn/internal/domains/inventory/model"
	"inn/shared/constant"
)

type fileImpl struct {
	store *filestore.Store
	otel  otel.Otel
}

func NewFile(store *filestore.Store, otel otel.Otel) Inventory {
	return &fileImpl{
		store: store,
		otel:  otel,
	}
}

func (repo *fileImpl) Get(ctx context.Context, roomType string) (int, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Get")
	defer scope.End()

	var (
		available int
		found     bool
	)

	err := repo.store.View(ctx, func(doc *filestore.Document) error {
		available, found = doc.Rooms[roomType]

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return 0, false, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return available, found, nil
}

func (repo *fileImpl) Set(ctx context.Context, roomType string, available int) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Set")
	defer scope.End()

	err := repo.store.Update(ctx, func(doc *filestore.Document) error {
		doc.Rooms[roomType] = available

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to set data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *fileImpl) All(ctx context.Context) (map[string]int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".All")
	defer scope.End()

	snapshot := map[string]int{}

	err := repo.store.View(ctx, func(doc *filestore.Document) error {
		maps.Copy(snapshot, doc.Rooms)

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return snapshot, nil
}
