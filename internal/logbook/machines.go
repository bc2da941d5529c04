package logbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"service-logger-backend/internal/media"
	"service-logger-backend/internal/model"
	"service-logger-backend/internal/validate"
)

// SelectMachine selects one of the selected customer's machines. An empty
// id clears the machine selection, which shows the new machine form.
func (s *Service) SelectMachine(ctx context.Context, st State, machineID string) (State, error) {
	customer, err := s.selectedCustomer(ctx, st)
	if err != nil {
		return fail(st, err), err
	}
	next := State{Mode: ModeExisting, SelectedCustomerID: customer.ID}
	if machineID == "" {
		return next, nil
	}
	if _, err := s.ownedMachine(ctx, customer, machineID); err != nil {
		return fail(st, err), err
	}
	next.SelectedMachineID = machineID
	return next, nil
}

// AddMachine validates and stores a machine for the selected customer and
// selects it.
func (s *Service) AddMachine(ctx context.Context, st State, form validate.MachineForm) (State, *Result, error) {
	customer, err := s.selectedCustomer(ctx, st)
	if err != nil {
		return fail(st, err), nil, err
	}
	if err := s.validator.Machine(form, s.catalog); err != nil {
		return st, nil, err
	}

	m := &model.Machine{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		Brand:        form.Brand.Value(),
		Model:        form.Model.Value(),
		Year:         strings.TrimSpace(form.Year),
		SerialNumber: strings.TrimSpace(form.SerialNumber),
		Observations: strings.TrimSpace(form.Observations),
	}
	photo, err := s.media.SaveMachinePhoto(customer.ID, m.ID, *form.Photo)
	if errors.Is(err, media.ErrUnsupportedMedia) {
		return st, nil, validate.MediaError("photo", "Photo", err)
	}
	if err != nil {
		return st, nil, fmt.Errorf("failed to save machine photo: %w", err)
	}
	m.PhotoPath = photo

	if _, err := s.store.Append(ctx, m); err != nil {
		s.logger.Error("failed to store machine", zap.Error(err))
		if rmErr := s.media.Remove(photo); rmErr != nil {
			s.logger.Warn("failed to remove orphaned photo", zap.String("path", photo), zap.Error(rmErr))
		}
		return st, nil, fmt.Errorf("failed to save machine: %w", err)
	}
	s.logger.Info("machine added", zap.String("machine_id", m.ID), zap.String("customer_id", customer.ID))

	res := &Result{ID: m.ID}
	s.push(ctx, res, model.KindMachine, []string{photo}, fmt.Sprintf("Add machine %s for %s", m.Model, customer.CompanyName))
	return State{Mode: ModeExisting, SelectedCustomerID: customer.ID, SelectedMachineID: m.ID}, res, nil
}

// UpdateMachine edits a machine of the selected customer. The stored photo
// is kept unless a new one is uploaded.
func (s *Service) UpdateMachine(ctx context.Context, st State, machineID string, form validate.MachineForm) (State, *Result, error) {
	customer, err := s.selectedCustomer(ctx, st)
	if err != nil {
		return fail(st, err), nil, err
	}
	m, err := s.ownedMachine(ctx, customer, machineID)
	if err != nil {
		return fail(st, err), nil, err
	}
	if err := s.validator.MachineEdit(form, s.catalog); err != nil {
		return st, nil, err
	}

	m.Brand = form.Brand.Value()
	m.Model = form.Model.Value()
	m.Year = strings.TrimSpace(form.Year)
	m.SerialNumber = strings.TrimSpace(form.SerialNumber)
	m.Observations = strings.TrimSpace(form.Observations)

	var files []string
	oldPhoto := m.PhotoPath
	if form.Photo != nil {
		photo, err := s.media.SaveMachinePhoto(customer.ID, m.ID, *form.Photo)
		if errors.Is(err, media.ErrUnsupportedMedia) {
			return st, nil, validate.MediaError("photo", "Photo", err)
		}
		if err != nil {
			return st, nil, fmt.Errorf("failed to save machine photo: %w", err)
		}
		m.PhotoPath = photo
		files = append(files, photo)
	}

	if err := s.store.Update(ctx, m); err != nil {
		s.logger.Error("failed to update machine", zap.String("machine_id", m.ID), zap.Error(err))
		s.discard(files)
		return st, nil, fmt.Errorf("failed to update machine: %w", err)
	}
	if len(files) > 0 && oldPhoto != "" && oldPhoto != m.PhotoPath {
		s.discard([]string{oldPhoto})
	}

	res := &Result{ID: m.ID}
	s.push(ctx, res, model.KindMachine, files, fmt.Sprintf("Update machine %s for %s", m.Model, customer.CompanyName))
	return State{Mode: ModeExisting, SelectedCustomerID: customer.ID, SelectedMachineID: m.ID}, res, nil
}
