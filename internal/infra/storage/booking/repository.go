package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает все бронирования одним INSERT
// Либо записываются все строки, либо ни одной. Пересечение с активной бронью той же
// комнаты отклоняется ограничением исключения и возвращается как ErrSlotNotAvailable
func (r *Repository) CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	if len(bookings) == 0 {
		return bookings, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"user_id",
			"booking_date",
			"start_time",
			"duration_hours",
			"status",
			"booking_code",
		)

	for _, b := range bookings {
		insertBuilder = insertBuilder.Values(
			b.RoomID,
			b.UserID,
			b.BookingDate,
			b.StartTime,
			b.DurationHours,
			b.Status,
			b.BookingCode,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Строки возвращаются в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(bookings) {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected extra row", ErrScanRow)
		}

		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&bookings[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}
		bookings[i].CreatedAt = createdAt.Time
		bookings[i].UpdatedAt = updatedAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	if i != len(bookings) {
		return nil, fmt.Errorf("%w: CreateBatch - expected %d rows, got %d", ErrScanRow, len(bookings), i)
	}

	return bookings, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя
// Опционально фильтрует по статусу и дате начала
func (r *Repository) GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("booking_date ASC", "start_time ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.FromDate})
	}

	return r.query(ctx, "GetByUserID", selectBuilder)
}

// GetActiveByDates получает активные бронирования на указанные даты
// roomIDs == nil - по всем комнатам. Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveByDates(ctx context.Context, roomIDs []int64, dates []time.Time) ([]*domain.Booking, error) {
	if len(dates) == 0 {
		return []*domain.Booking{}, nil
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Eq{"booking_date": dates}).
		OrderBy("booking_date ASC", "start_time ASC")

	if roomIDs != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": roomIDs})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetActiveByDates", selectBuilder)
}

// GetBySeriesCode получает все бронирования серии в порядке дат
func (r *Repository) GetBySeriesCode(ctx context.Context, code string) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_code": code}).
		OrderBy("booking_date ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetBySeriesCode", selectBuilder)
}

// SeriesCodeExists проверяет, занят ли код серии
func (r *Repository) SeriesCodeExists(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("bookings").
		Where(squirrel.Eq{"booking_code": code}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: SeriesCodeExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: SeriesCodeExists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetPendingCheckIn получает активные неотмеченные бронирования не позже указанной даты
// Кандидаты на автоосвобождение
func (r *Repository) GetPendingCheckIn(ctx context.Context, untilDate time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Eq{"is_checked_in": false}).
		Where(squirrel.LtOrEq{"booking_date": untilDate}).
		OrderBy("booking_date ASC", "start_time ASC")

	return r.query(ctx, "GetPendingCheckIn", selectBuilder)
}

// Cancel отменяет активное бронирование
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	affected, err := r.exec(ctx, executor, "Cancel", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// CancelMany отменяет активные бронирования из списка, возвращает число отмененных
func (r *Repository) CancelMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelMany - build update query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, executor, "CancelMany", query, args)
}

// MarkReleased переводит бронирования в статус released
// Условие в WHERE не дает освободить уже отмеченную или отмененную бронь
func (r *Repository) MarkReleased(ctx context.Context, ids []int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusReleased).
		Set("released_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Eq{"is_checked_in": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkReleased - build update query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, executor, "MarkReleased", query, args)
}

// MarkCheckedIn отмечает присутствие
func (r *Repository) MarkCheckedIn(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_checked_in", true).
		Set("checked_in_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Eq{"is_checked_in": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCheckedIn - build update query: %v", ErrBuildQuery, err)
	}

	affected, err := r.exec(ctx, executor, "MarkCheckedIn", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCannotCheckIn
	}

	return nil
}

// Reschedule меняет дату, время и длительность активного бронирования на месте
func (r *Repository) Reschedule(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", b.BookingDate).
		Set("start_time", b.StartTime).
		Set("duration_hours", b.DurationHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Eq{"is_checked_in": false}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCannotReschedule
	}
	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// query выполняет SELECT и сканирует бронирования
func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

// exec выполняет UPDATE и возвращает число затронутых строк
func (r *Repository) exec(ctx context.Context, executor DBExecutor, op string, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.UserID,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationHours,
		&b.Status,
		&b.IsCheckedIn,
		&b.CheckedInAt,
		&b.BookingCode,
		&b.CancelledAt,
		&b.ReleasedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.BookingDate = domain.DateOnly(b.BookingDate)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
