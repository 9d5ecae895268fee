package application

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/pkg/mailer"
	"github.com/oksasatya/wordle-circles/pkg/mailer/templates"
)

// Publisher enqueues a JSON job; *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier enqueues notification emails. A nil Notifier or one without a
// Publisher drops everything; delivery never fails the calling operation.
type Notifier struct {
	Pub     Publisher
	AppName string
	AppURL  string
	Logger  *logrus.Logger
}

func (n *Notifier) enqueue(ctx context.Context, to, template string, data templates.NotificationData) {
	if n == nil || n.Pub == nil || to == "" {
		return
	}
	data.AppName = n.AppName
	data.AppURL = n.AppURL
	job := mailer.EmailJob{To: to, Template: template, Data: templates.ToMap(data)}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("template", template).Warn("failed to publish email job")
	}
}

func discardLogger(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	l = logrus.New()
	l.SetOutput(io.Discard)
	return l
}
