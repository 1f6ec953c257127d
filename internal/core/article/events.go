package article

import (
	"context"
	"time"
)

// JobEvent はジョブが終端状態に達したときに発行される通知
type JobEvent struct {
	JobID        string    `json:"job_id"`
	Status       JobStatus `json:"status"`
	Topic        string    `json:"topic"`
	QualityScore int       `json:"quality_score,omitempty"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
}

// EventPublisher はジョブ完了イベントの配信を抽象化する
type EventPublisher interface {
	PublishJobEvent(ctx context.Context, event JobEvent) error
}
