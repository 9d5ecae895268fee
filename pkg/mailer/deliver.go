package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/wordle-circles/pkg/mailer/templates"
)

var (
	// ErrEmptyJob is returned for jobs with neither a template nor a body.
	ErrEmptyJob = errors.New("email job has no template or body")
	// ErrSend wraps failures from the Sender, as opposed to bad jobs.
	ErrSend = errors.New("send email")
)

// Deliver renders job (when it names a template) and sends it.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, templates.FromMap(job.Data))
		if err != nil {
			return err
		}
	}
	if subject == "" || (text == "" && html == "") {
		return ErrEmptyJob
	}
	if err := s.Send(ctx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}
