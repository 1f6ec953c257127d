// Package natsjs はジョブ完了イベントをNATSへ配信するパブリッシャーを提供する。
package natsjs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/jinford/seo-writer/internal/core/article"
)

// Publisher はNATSサブジェクトへジョブイベントをJSONで配信する
type Publisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewPublisher はNATSサーバーへ接続しパブリッシャーを作成します
func NewPublisher(url string, subject string, logger *slog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}, nil
}

// PublishJobEvent はジョブイベントを配信します
func (p *Publisher) PublishJobEvent(ctx context.Context, event article.JobEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode job event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish job event: %w", err)
	}

	p.logger.Debug("job event published",
		slog.String("subject", p.subject),
		slog.String("jobID", event.JobID),
		slog.String("status", string(event.Status)),
	)
	return nil
}

// Close はNATS接続を閉じます。バッファ済みメッセージの送信を待ちます。
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain nats connection", slog.Any("error", err))
	}
}

// インターフェース実装の確認
var _ article.EventPublisher = (*Publisher)(nil)
