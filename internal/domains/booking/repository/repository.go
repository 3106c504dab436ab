package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"dpbooking/infras/otel"
	"dpbooking/infras/postgres"
	"dpbooking/internal/domains/booking/model"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/logger"
	gRepo "dpbooking/shared/repository"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	// CreateWithLines inserts the booking and its meal lines in one
	// transaction and returns the generated booking id.
	CreateWithLines(ctx context.Context, booking model.Booking, lines []model.BookingMeal) (int64, error)
	// ReplaceLines swaps the booking's meal lines inside a transaction.
	ReplaceLines(ctx context.Context, bookingID int64, lines []model.BookingMeal) error
	GetLines(ctx context.Context, bookingID int64) ([]model.BookingMeal, error)
	GetLinesForBookings(ctx context.Context, bookingIDs []int64) ([]model.BookingMeal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	lines gRepo.Repository[model.BookingMeal]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		lines:      gRepo.NewRepository[model.BookingMeal](model.LinesEntityName, model.LinesTableName, model.FieldBookingID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) CreateWithLines(ctx context.Context, booking model.Booking, lines []model.BookingMeal) (id int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithLines")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id, err = repo.InsertReturningIDTx(ctx, tx, booking)
	if err != nil {
		return 0, err
	}

	if len(lines) > 0 {
		for i := range lines {
			lines[i].BookingID = id
		}

		if err = repo.lines.InsertBulkTx(ctx, tx, lines); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func (repo *repositoryImpl) ReplaceLines(ctx context.Context, bookingID int64, lines []model.BookingMeal) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ReplaceLines")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.LinesTableName,
			},
		},
	}

	if err = repo.lines.DeleteTx(ctx, tx, filter); err != nil {
		return err
	}

	if len(lines) > 0 {
		for i := range lines {
			lines[i].BookingID = bookingID
		}

		if err = repo.lines.InsertBulkTx(ctx, tx, lines); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetLines(ctx context.Context, bookingID int64) ([]model.BookingMeal, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.LinesTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldLineNo, SortDir: "ASC"}

	return repo.lines.GetAll(ctx, params, filter) // nolint:wrapcheck
}

func (repo *repositoryImpl) GetLinesForBookings(ctx context.Context, bookingIDs []int64) ([]model.BookingMeal, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorIn,
				Value:    bookingIDs,
				Table:    model.LinesTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldLineNo, SortDir: "ASC"}

	return repo.lines.GetAll(ctx, params, filter) // nolint:wrapcheck
}
