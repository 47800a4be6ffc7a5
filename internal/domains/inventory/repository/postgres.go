package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/inventory/model"
	"inn/shared/constant"
	"inn/shared/logger"
	"inn/shared/timezone"
)

type postgresImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Inventory {
	return &postgresImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *postgresImpl) Get(ctx context.Context, roomType string) (int, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Get")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", model.FieldAvailable, model.TableName, model.FieldRoomType)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var available int

	err := repo.db.Read.GetContext(ctx, &available, query, roomType)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, false, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return available, true, nil
}

func (repo *postgresImpl) Set(ctx context.Context, roomType string, available int) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Set")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT (%s) DO UPDATE SET %s = $2, %s = $3",
		model.TableName, model.FieldRoomType, model.FieldAvailable, constant.FieldModifiedAt,
		model.FieldRoomType, model.FieldAvailable, constant.FieldModifiedAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.ExecContext(ctx, query, roomType, available, timezone.Now())
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to set data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *postgresImpl) All(ctx context.Context) (map[string]int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".All")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s", model.FieldRoomType, model.FieldAvailable, constant.FieldModifiedAt, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []model.RoomInventory

	err := repo.db.Read.SelectContext(ctx, &rows, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	snapshot := make(map[string]int, len(rows))
	for _, row := range rows {
		snapshot[row.RoomType] = row.Available
	}

	return snapshot, nil
}
