package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// HandleMessage decodes one queued job and delivers it. requeue reports
// whether a failure is worth retrying: malformed or unrenderable jobs are
// dropped, send failures go back on the queue.
func HandleMessage(ctx context.Context, s Sender, body []byte) (requeue bool, err error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return false, fmt.Errorf("decode job: %w", err)
	}
	if job.To == "" {
		return false, errors.New("job has no recipient")
	}
	if err := Deliver(ctx, s, job); err != nil {
		return errors.Is(err, ErrSend), err
	}
	return false, nil
}
