package logbook

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"service-logger-backend/internal/model"
	"service-logger-backend/internal/notification"
)

// notify sends the customer confirmation and, when enabled, the internal
// summary. Every failure becomes a warning.
func (s *Service) notify(ctx context.Context, res *Result, customer *model.Customer, machine *model.Machine, job *model.Job) {
	if s.mailer == nil || s.composer == nil {
		return
	}

	data := s.emailData(customer, machine, job)
	attachments, warnings := s.attachments(job)
	for _, w := range warnings {
		res.warn(w)
	}

	subject, body, err := notification.CustomerConfirmation(data)
	if err != nil {
		res.warn(fmt.Sprintf("Could not prepare the confirmation email: %v", err))
	} else {
		s.send(ctx, res, job, customer.Email, subject, body, attachments)
	}

	if !s.opts.InternalSummary {
		return
	}
	subject, body, err = notification.InternalSummary(data)
	if err != nil {
		res.warn(fmt.Sprintf("Could not prepare the internal summary: %v", err))
		return
	}
	s.send(ctx, res, job, "", subject, body, attachments)
}

func (s *Service) send(ctx context.Context, res *Result, job *model.Job, recipient, subject, body string, attachments []notification.Attachment) {
	msg, err := s.composer.Compose(job, recipient, subject, body, attachments)
	if err != nil {
		s.logger.Warn("failed to compose email", zap.String("subject", subject), zap.Error(err))
		res.warn(fmt.Sprintf("Could not prepare %q: %v", subject, err))
		return
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("failed to send email", zap.Strings("to", msg.To), zap.Error(err))
		res.warn(fmt.Sprintf("Could not send %q to %s: %v", subject, strings.Join(msg.To, ", "), err))
		return
	}
	s.logger.Info("email sent", zap.String("subject", subject), zap.Strings("to", msg.To))
}

func (s *Service) emailData(customer *model.Customer, machine *model.Machine, job *model.Job) notification.JobEmail {
	links := make([]notification.Link, 0, len(job.LeftPaths))
	for _, p := range job.LeftPaths {
		links = append(links, notification.Link{Name: path.Base(p), URL: s.mediaURL(p)})
	}
	return notification.JobEmail{
		Team:          s.opts.Team,
		ContactName:   customer.ContactName,
		JobID:         job.ID,
		CustomerName:  customer.CompanyName,
		MachineLabel:  MachineLabel(machine),
		Employee:      job.EmployeeName,
		Technician:    job.Technician,
		Date:          job.Date,
		TravelMinutes: job.TravelMinutes,
		TimeIn:        job.TimeIn,
		TimeOut:       job.TimeOut,
		Description:   job.Description,
		Comments:      job.AdditionalComments,
		LeftMedia:     links,
	}
}

// mediaURL links a stored file under the sync raw base URL, or under the
// server's static media route when no remote is configured.
func (s *Service) mediaURL(p string) string {
	if s.opts.RawBaseURL != "" {
		return strings.TrimRight(s.opts.RawBaseURL, "/") + "/" + strings.TrimLeft(p, "/")
	}
	rel, err := filepath.Rel(filepath.Clean(s.media.Root()), filepath.FromSlash(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return MediaRoute + "/" + filepath.ToSlash(rel)
}

// attachments loads the signature and the "as left" media up to the size
// limit. Files that are left out are described in warnings.
func (s *Service) attachments(job *model.Job) (attached []notification.Attachment, warnings []string) {
	var total int64
	for _, p := range append([]string{job.SignaturePath}, job.LeftPaths...) {
		name := path.Base(p)
		data, err := s.media.Read(p)
		if err != nil {
			s.logger.Warn("failed to read attachment", zap.String("path", p), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("%s could not be attached: %v", name, err))
			continue
		}
		if s.opts.MaxAttachmentBytes > 0 && total+int64(len(data)) > s.opts.MaxAttachmentBytes {
			warnings = append(warnings, fmt.Sprintf("%s was not attached: the email size limit was reached.", name))
			continue
		}
		total += int64(len(data))
		attached = append(attached, notification.Attachment{Filename: name, Data: data})
	}
	return attached, warnings
}
