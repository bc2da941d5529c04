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
	"service-logger-backend/internal/parse"
	"service-logger-backend/internal/validate"
)

// LogJob records a service visit on the selected machine, stores its media
// and signature, syncs everything and emails the confirmation.
func (s *Service) LogJob(ctx context.Context, st State, form validate.JobForm) (State, *Result, error) {
	customer, machine, err := s.Selection(ctx, st)
	if err != nil {
		return fail(st, err), nil, err
	}
	if machine == nil {
		return fail(st, ErrMachineNotFound), nil, ErrMachineNotFound
	}
	if err := s.validator.Job(form); err != nil {
		return st, nil, err
	}
	signature, err := media.DecodeSignature(form.Signature)
	if err != nil {
		return st, nil, validate.MediaError("signature", "Signature", err)
	}
	travel, err := parse.Minutes(form.TravelMinutes)
	if err != nil {
		return st, nil, err
	}

	timeIn, err := parse.Clock(form.TimeIn)
	if err != nil {
		return st, nil, err
	}
	timeOut, err := parse.Clock(form.TimeOut)
	if err != nil {
		return st, nil, err
	}

	job := &model.Job{
		ID:                 uuid.NewString(),
		CustomerID:         customer.ID,
		MachineID:          machine.ID,
		EmployeeName:       strings.TrimSpace(form.EmployeeName),
		Technician:         form.Technician,
		Date:               form.Date,
		TravelMinutes:      travel,
		TimeIn:             timeIn,
		TimeOut:            timeOut,
		Description:        strings.TrimSpace(form.Description),
		PartsUsed:          strings.TrimSpace(form.PartsUsed),
		AdditionalComments: strings.TrimSpace(form.AdditionalComments),
	}

	saved, err := s.saveJobMedia(job, form, signature)
	if err != nil {
		s.discard(saved)
		return st, nil, err
	}

	if _, err := s.store.Append(ctx, job); err != nil {
		s.logger.Error("failed to store job", zap.Error(err))
		s.discard(saved)
		return st, nil, fmt.Errorf("failed to save job: %w", err)
	}
	s.logger.Info("job logged",
		zap.String("job_id", job.ID),
		zap.String("customer_id", customer.ID),
		zap.String("machine_id", machine.ID),
	)

	res := &Result{ID: job.ID}
	s.push(ctx, res, model.KindJob, saved, fmt.Sprintf("Log job %s for %s", job.ID, customer.CompanyName))
	s.notify(ctx, res, customer, machine, job)
	return st, res, nil
}

// saveJobMedia writes the found, left and signature files and records their
// paths on job. It returns every path written, also on failure.
func (s *Service) saveJobMedia(job *model.Job, form validate.JobForm, signature []byte) ([]string, error) {
	var saved []string
	stages := []struct {
		stage   media.Stage
		field   string
		label   string
		uploads []media.Upload
		paths   *[]string
	}{
		{media.StageFound, "found", "Machine as Found", form.Found, &job.FoundPaths},
		{media.StageLeft, "left", "Machine as Left", form.Left, &job.LeftPaths},
	}
	for _, st := range stages {
		for _, up := range st.uploads {
			p, err := s.media.SaveJobMedia(job.CustomerID, job.ID, st.stage, up)
			if errors.Is(err, media.ErrUnsupportedMedia) {
				return saved, validate.MediaError(st.field, st.label, err)
			}
			if err != nil {
				return saved, fmt.Errorf("failed to save job media: %w", err)
			}
			*st.paths = append(*st.paths, p)
			saved = append(saved, p)
		}
	}

	sig, err := s.media.SaveSignature(job.CustomerID, job.ID, signature)
	if err != nil {
		return saved, fmt.Errorf("failed to save signature: %w", err)
	}
	job.SignaturePath = sig
	return append(saved, sig), nil
}

func (s *Service) discard(paths []string) {
	for _, p := range paths {
		if err := s.media.Remove(p); err != nil {
			s.logger.Warn("failed to remove orphaned media", zap.String("path", p), zap.Error(err))
		}
	}
}
