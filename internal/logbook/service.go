// Package logbook runs the field service workflow: pick or add a customer,
// pick or add one of its machines, and log a job against it.
package logbook

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"service-logger-backend/internal/catalog"
	"service-logger-backend/internal/geo"
	"service-logger-backend/internal/media"
	"service-logger-backend/internal/model"
	"service-logger-backend/internal/notification"
	"service-logger-backend/internal/remote"
	"service-logger-backend/internal/store"
	"service-logger-backend/internal/validate"
)

// MediaRoute is the URL prefix the HTTP server serves the media root under.
const MediaRoute = "/media"

// Options tune the job emails.
type Options struct {
	// Team signs the customer confirmation.
	Team string
	// RawBaseURL prefixes media paths in email links.
	RawBaseURL string
	// InternalSummary also sends the office a detailed summary.
	InternalSummary bool
	// MaxAttachmentBytes caps the total size attached to one email.
	MaxAttachmentBytes int64
}

// Deps are the collaborators of a Service. Syncer, Mailer and Composer are
// optional.
type Deps struct {
	Store     store.Store
	Validator *validate.Validator
	Catalog   catalog.Catalog
	Media     *media.Storage
	Locator   *geo.Locator
	Syncer    remote.Syncer
	Mailer    notification.Mailer
	Composer  *notification.Composer
	// TablesDir holds the CSV tables pushed by the syncer. Empty when
	// records live in a database.
	TablesDir string
	Options   Options
	Logger    *zap.Logger
}

// Service implements the workflow operations.
type Service struct {
	store     store.Store
	validator *validate.Validator
	catalog   catalog.Catalog
	media     *media.Storage
	locator   *geo.Locator
	syncer    remote.Syncer
	mailer    notification.Mailer
	composer  *notification.Composer
	tablesDir string
	opts      Options
	logger    *zap.Logger
}

// NewService wires a Service.
func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Syncer == nil {
		d.Syncer = remote.Noop{}
	}
	if d.Locator == nil {
		d.Locator = geo.NewLocator(nil, d.Logger)
	}
	if d.Options.Team == "" {
		d.Options.Team = "Machine Hunter"
	}
	return &Service{
		store:     d.Store,
		validator: d.Validator,
		catalog:   d.Catalog,
		media:     d.Media,
		locator:   d.Locator,
		syncer:    d.Syncer,
		mailer:    d.Mailer,
		composer:  d.Composer,
		tablesDir: d.TablesDir,
		opts:      d.Options,
		logger:    d.Logger,
	}
}

// Start pulls the shared snapshot and geocodes every customer. Problems are
// returned as warnings; the service works on the local data regardless.
func (s *Service) Start(ctx context.Context) ([]string, error) {
	var warnings []string
	if err := s.syncer.Pull(ctx); err != nil {
		s.logger.Warn("remote pull failed", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("Could not fetch the latest data: %v", err))
	}
	customers, err := s.Customers(ctx)
	if err != nil {
		return warnings, err
	}
	return append(warnings, s.locator.Warm(ctx, customers)...), nil
}

// Customers lists every customer in table order.
func (s *Service) Customers(ctx context.Context) ([]*model.Customer, error) {
	return store.LoadAllOf[*model.Customer](ctx, s.store, model.KindCustomer)
}

// Machines lists the machines of one customer.
func (s *Service) Machines(ctx context.Context, customerID string) ([]*model.Machine, error) {
	return store.FindByForeignKeyOf[*model.Machine](ctx, s.store, model.KindMachine, model.ColCustomerID, customerID)
}

// AllMachines lists every machine in table order.
func (s *Service) AllMachines(ctx context.Context) ([]*model.Machine, error) {
	return store.LoadAllOf[*model.Machine](ctx, s.store, model.KindMachine)
}

// Jobs lists every logged job in table order.
func (s *Service) Jobs(ctx context.Context) ([]*model.Job, error) {
	return store.LoadAllOf[*model.Job](ctx, s.store, model.KindJob)
}

// Markers returns the located customers for the selection map.
func (s *Service) Markers(ctx context.Context) ([]geo.Marker, error) {
	customers, err := s.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return s.locator.Markers(customers), nil
}

// Catalog returns the brand and model choices.
func (s *Service) Catalog() catalog.Catalog { return s.catalog }

// Technicians returns the technicians a job may name.
func (s *Service) Technicians() []string { return s.validator.Technicians() }

// MachineLabel is the "Brand (Model)" text of a machine.
func MachineLabel(m *model.Machine) string { return m.Label() }

// Selection resolves the customer and machine named by st. The machine is
// nil when none is selected.
func (s *Service) Selection(ctx context.Context, st State) (*model.Customer, *model.Machine, error) {
	customer, err := s.selectedCustomer(ctx, st)
	if err != nil {
		return nil, nil, err
	}
	if st.SelectedMachineID == "" {
		return customer, nil, nil
	}
	machine, err := s.ownedMachine(ctx, customer, st.SelectedMachineID)
	if err != nil {
		return nil, nil, err
	}
	return customer, machine, nil
}

func (s *Service) selectedCustomer(ctx context.Context, st State) (*model.Customer, error) {
	if st.SelectedCustomerID == "" {
		return nil, ErrNoCustomerSelected
	}
	c, err := store.FindByIDOf[*model.Customer](ctx, s.store, model.KindCustomer, st.SelectedCustomerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	return c, err
}

func (s *Service) ownedMachine(ctx context.Context, customer *model.Customer, machineID string) (*model.Machine, error) {
	m, err := store.FindByIDOf[*model.Machine](ctx, s.store, model.KindMachine, machineID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMachineNotFound
	}
	if err != nil {
		return nil, err
	}
	if m.CustomerID != customer.ID {
		return nil, ErrMachineNotOwned
	}
	return m, nil
}

// fail maps a referential error to a reset state and keeps st otherwise.
func fail(st State, err error) State {
	if IsReferential(err) {
		return Initial()
	}
	return st
}

// push publishes changed files. Failures become warnings since the records
// are already stored locally.
func (s *Service) push(ctx context.Context, res *Result, kind model.Kind, files []string, message string) {
	if s.tablesDir != "" {
		files = append([]string{store.TablePath(s.tablesDir, kind)}, files...)
	}
	if len(files) == 0 {
		return
	}
	if err := s.syncer.Push(ctx, files, message); err != nil {
		s.logger.Warn("remote push failed", zap.String("message", message), zap.Error(err))
		res.warn(fmt.Sprintf("Saved locally but could not sync: %v", err))
	}
}
