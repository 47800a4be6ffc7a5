package repository

import (
	"context"
	"fmt"
	"strings"

	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/booking/model"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/logger"
)

var insertColumns = []string{
	model.FieldID,
	model.FieldRoomType,
	model.FieldQuantity,
	model.FieldCheckIn,
	model.FieldCheckOut,
	model.FieldGuestName,
	model.FieldPhone,
	model.FieldHasValidID,
	model.FieldPaymentAmount,
	model.FieldPaymentChannel,
	model.FieldTransactionID,
	model.FieldAdditionalRequests,
	model.FieldStatus,
	constant.FieldCreatedAt,
	constant.FieldModifiedAt,
}

type postgresImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Booking {
	return &postgresImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *postgresImpl) Insert(ctx context.Context, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Insert")
	defer scope.End()

	placeholders := make([]string, 0, len(insertColumns))
	for _, col := range insertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		model.TableName, strings.Join(insertColumns, ", "), strings.Join(placeholders, ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, booking)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *postgresImpl) GetAll(ctx context.Context, params gDto.QueryParams, roomType string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetAll")
	defer scope.End()

	args := map[string]any{}
	where := constant.Empty

	if roomType != constant.Empty {
		where = fmt.Sprintf("WHERE %s = :%s", model.FieldRoomType, model.FieldRoomType)
		args[model.FieldRoomType] = roomType
	}

	ordering := fmt.Sprintf("ORDER BY %s DESC", constant.FieldCreatedAt)

	pagination := constant.Empty
	if params.Page > 0 && params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	} else if params.Limit > 0 {
		args["limit"] = params.Limit

		pagination = "LIMIT :limit"
	}

	query := fmt.Sprintf("SELECT * FROM %s %s %s %s", model.TableName, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &bookings, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

func (repo *postgresImpl) Count(ctx context.Context, roomType string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Count")
	defer scope.End()

	args := map[string]any{}
	where := constant.Empty

	if roomType != constant.Empty {
		where = fmt.Sprintf("WHERE %s = :%s", model.FieldRoomType, model.FieldRoomType)
		args[model.FieldRoomType] = roomType
	}

	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s %s", model.FieldID, model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &count, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}
