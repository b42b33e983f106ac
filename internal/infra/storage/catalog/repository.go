package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: здания, комнаты, комбинации, оборудование
// Каталог только читается, редактирование выполняется административной частью
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Комната присоединяется к комбинации, если она объединенная или одна из участниц
const combinationJoin = "combinations c ON c.union_room_id = r.id OR r.id = ANY(c.member_room_ids)"

var roomColumns = []string{
	"r.id",
	"r.name",
	"r.building_id",
	"r.capacity",
	"r.floor",
	"r.equipment_ids",
	"r.is_active",
	"r.seating_arrangement",
	"c.id",
	"c.union_room_id",
	"c.member_room_ids",
}

// GetRooms получает все комнаты вместе с комбинациями
func (r *Repository) GetRooms(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms r").
		LeftJoin(combinationJoin).
		OrderBy("r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRooms - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRooms - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// GetRoomByID получает комнату по ID
func (r *Repository) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms r").
		LeftJoin(combinationJoin).
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomByID - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// GetBuildings получает все здания
func (r *Repository) GetBuildings(ctx context.Context) ([]*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "latitude", "longitude").
		From("buildings").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBuildings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBuildings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	buildings := make([]*domain.Building, 0)
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Latitude, &b.Longitude); err != nil {
			return nil, fmt.Errorf("%w: GetBuildings - scan row: %v", ErrScanRow, err)
		}
		buildings = append(buildings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBuildings - rows error: %v", ErrScanRow, err)
	}

	return buildings, nil
}

// GetEquipment получает справочник оборудования
func (r *Repository) GetEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name_ru", "name_en").
		From("equipment").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	equipment := make([]*domain.Equipment, 0)
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.NameRu, &e.NameEn); err != nil {
			return nil, fmt.Errorf("%w: GetEquipment - scan row: %v", ErrScanRow, err)
		}
		equipment = append(equipment, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEquipment - rows error: %v", ErrScanRow, err)
	}

	return equipment, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRoom сканирует строку в порядке roomColumns
func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		room          domain.Room
		seating       sql.NullString
		combinationID sql.NullInt64
		unionRoomID   sql.NullInt64
		memberIDs     []int64
	)

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.BuildingID,
		&room.Capacity,
		&room.Floor,
		pq.Array(&room.EquipmentIDs),
		&room.IsActive,
		&seating,
		&combinationID,
		&unionRoomID,
		pq.Array(&memberIDs),
	)
	if err != nil {
		return nil, err
	}

	room.SeatingArrangement = seating.String

	if combinationID.Valid {
		if len(memberIDs) == 0 || len(memberIDs) > domain.MaxCombinationMembers {
			return nil, fmt.Errorf("%w: combination id=%d has %d members",
				ErrInvalidCombination, combinationID.Int64, len(memberIDs))
		}
		room.Combination = &domain.Combination{
			ID:            combinationID.Int64,
			UnionRoomID:   unionRoomID.Int64,
			MemberRoomIDs: memberIDs,
		}
	}

	return &room, nil
}
