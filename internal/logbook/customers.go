package logbook

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"service-logger-backend/internal/geo"
	"service-logger-backend/internal/model"
	"service-logger-backend/internal/validate"
)

// SelectOnMap picks the customer closest to a map click. When nothing is
// close enough the state is returned unchanged and ok is false.
func (s *Service) SelectOnMap(ctx context.Context, st State, click geo.Point) (State, bool, error) {
	customers, err := s.Customers(ctx)
	if err != nil {
		return st, false, err
	}
	id, ok := geo.Nearest(click, s.locator.Candidates(customers))
	if !ok {
		return st, false, nil
	}
	return State{Mode: ModeExisting, SelectedCustomerID: id}, true, nil
}

// BeginAddCustomer switches to the new customer form.
func (s *Service) BeginAddCustomer(State) State {
	return State{Mode: ModeAdd}
}

// Cancel drops the selection and returns to the map.
func (s *Service) Cancel(State) State {
	return Initial()
}

// SelectCustomer selects an existing customer by id.
func (s *Service) SelectCustomer(ctx context.Context, st State, customerID string) (State, error) {
	next := State{Mode: ModeExisting, SelectedCustomerID: customerID}
	if _, err := s.selectedCustomer(ctx, next); err != nil {
		return fail(st, err), err
	}
	return next, nil
}

// AddCustomer validates and stores a new customer, then syncs it and places
// it on the map. On success the operator is back on the map.
func (s *Service) AddCustomer(ctx context.Context, st State, form validate.CustomerForm) (State, *Result, error) {
	if err := s.validator.Customer(form); err != nil {
		return st, nil, err
	}

	c := &model.Customer{
		CompanyName: strings.TrimSpace(form.CompanyName),
		ContactName: strings.TrimSpace(form.ContactName),
		Address:     strings.TrimSpace(form.Address),
		Phone:       strings.TrimSpace(form.Phone),
		Email:       strings.TrimSpace(form.Email),
	}
	id, err := s.store.Append(ctx, c)
	if err != nil {
		s.logger.Error("failed to store customer", zap.Error(err))
		return st, nil, fmt.Errorf("failed to save customer: %w", err)
	}
	s.logger.Info("customer added", zap.String("customer_id", id), zap.String("company", c.CompanyName))

	res := &Result{ID: id}
	s.push(ctx, res, model.KindCustomer, nil, fmt.Sprintf("Add customer %s", c.CompanyName))
	_, warning := s.locator.Locate(ctx, c)
	res.warn(warning)
	return Initial(), res, nil
}
