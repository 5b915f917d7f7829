package service

import (
	"context"

	"github.com/AakashSorathiya/carrental-service/internal/model"
)

func (s *Service) AddVehicle(ctx context.Context, req model.AddVehicleRequest) (model.Vehicle, error) {
	return s.repo.CreateVehicle(ctx, req)
}

func (s *Service) GetVehicle(ctx context.Context, id int) (model.Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context, status model.VehicleStatus, page, size int) (model.ListVehicles, error) {
	return s.repo.ListVehicles(ctx, status, page, size)
}

func (s *Service) UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (model.Vehicle, error) {
	return s.repo.UpdateVehicle(ctx, id, req)
}

func (s *Service) SetVehicleMaintenance(ctx context.Context, id int) (model.Vehicle, error) {
	return s.repo.SetVehicleMaintenance(ctx, id)
}

func (s *Service) ReturnVehicleToService(ctx context.Context, id int) (model.Vehicle, error) {
	return s.repo.ReturnVehicleToService(ctx, id)
}
