package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
)

func (r *repository) CreateVehicle(ctx context.Context, req model.AddVehicleRequest) (model.Vehicle, error) {
	q, args, err := qb.Insert(vehiclesTableName).
		Columns("make", "model", "year", "color", "license_plate", "daily_rate", "status").
		Values(req.Make, req.Model, req.Year, req.Color, req.LicensePlate, req.DailyRate, model.VehicleAvailable).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}
	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, q, args...); err != nil {
		r.log.Error("CreateVehicle", zap.String("q", q), zap.Any("args", args))
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *repository) GetVehicle(ctx context.Context, id int) (model.Vehicle, error) {
	q, args, err := qb.Select("*").
		From(vehiclesTableName).
		Where(sq.Eq{"vehicle_id": id}).
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}
	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, errs.ErrNotFound
		}
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *repository) ListVehicles(ctx context.Context, status model.VehicleStatus, page, size int) (model.ListVehicles, error) {
	q := qb.Select("*").
		From(vehiclesTableName).
		OrderBy("vehicle_id")

	if status != "" {
		q = q.Where(sq.Eq{"status": status})
	}
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListVehicles{}, err
	}
	var vehicles []model.Vehicle
	if err := r.db.SelectContext(ctx, &vehicles, query, args...); err != nil {
		return model.ListVehicles{}, err
	}
	return model.ListVehicles{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(vehicles),
		},
		Items: vehicles,
	}, nil
}

func (r *repository) UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (model.Vehicle, error) {
	q := qb.Update(vehiclesTableName).Where(sq.Eq{"vehicle_id": id})
	set := false
	if req.Make != nil {
		q, set = q.Set("make", *req.Make), true
	}
	if req.Model != nil {
		q, set = q.Set("model", *req.Model), true
	}
	if req.Year != nil {
		q, set = q.Set("year", *req.Year), true
	}
	if req.Color != nil {
		q, set = q.Set("color", *req.Color), true
	}
	if req.DailyRate != nil {
		q, set = q.Set("daily_rate", *req.DailyRate), true
	}
	if !set {
		return r.GetVehicle(ctx, id)
	}

	query, args, err := q.Suffix("returning *").ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}
	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, errs.ErrNotFound
		}
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *repository) SetVehicleMaintenance(ctx context.Context, id int) (model.Vehicle, error) {
	q := fmt.Sprintf(`update %s
	set status = 'MAINTENANCE',
	    last_maintenance_date = current_date,
	    next_maintenance_date = current_date + interval '3 months'
	where vehicle_id = $1 and status = 'AVAILABLE'
	returning *`, vehiclesTableName)

	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, r.classifyVehicleState(ctx, id, "not available for maintenance")
		}
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *repository) ReturnVehicleToService(ctx context.Context, id int) (model.Vehicle, error) {
	q := fmt.Sprintf(`update %s
	set status = 'AVAILABLE'
	where vehicle_id = $1 and status = 'MAINTENANCE'
	returning *`, vehiclesTableName)

	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, r.classifyVehicleState(ctx, id, "not in maintenance")
		}
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

// classifyVehicleState distinguishes a missing vehicle from one in the wrong
// status after a conditional update touched zero rows.
func (r *repository) classifyVehicleState(ctx context.Context, id int, reason string) error {
	if _, err := r.GetVehicle(ctx, id); err != nil {
		return err
	}
	return errors.Wrap(errs.ErrInvalidState, reason)
}
