package article

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jinford/seo-writer/internal/platform/metrics"
)

// 生成リクエストの受付範囲
const (
	MinTopicLength = 3
	MaxTopicLength = 200

	MinTargetWordCount = 500
	MaxTargetWordCount = 5000

	DefaultTargetWordCount = 1500
	DefaultLanguage        = "en"
)

var languagePattern = regexp.MustCompile(`^[a-z]{2}$`)

// GenerationRequest は記事生成の入力
type GenerationRequest struct {
	Topic           string `json:"topic"`
	TargetWordCount int    `json:"target_word_count"`
	Language        string `json:"language"`
}

// Normalize は未指定のフィールドをデフォルト値で埋める
func (r *GenerationRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.TargetWordCount == 0 {
		r.TargetWordCount = DefaultTargetWordCount
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// Validate は受付範囲のチェックを行う。Normalize 済みであること。
func (r GenerationRequest) Validate() error {
	if l := utf8.RuneCountInString(r.Topic); l < MinTopicLength || l > MaxTopicLength {
		return fmt.Errorf("%w: topic must be %d-%d characters (got %d)", ErrInvalidRequest, MinTopicLength, MaxTopicLength, l)
	}
	if r.TargetWordCount < MinTargetWordCount || r.TargetWordCount > MaxTargetWordCount {
		return fmt.Errorf("%w: target_word_count must be %d-%d (got %d)", ErrInvalidRequest, MinTargetWordCount, MaxTargetWordCount, r.TargetWordCount)
	}
	if !languagePattern.MatchString(r.Language) {
		return fmt.Errorf("%w: language must be a two-letter lowercase code (got %q)", ErrInvalidRequest, r.Language)
	}
	return nil
}

// Service は記事生成ジョブの受付と照会を担う
type Service struct {
	store        JobStore
	orchestrator *Orchestrator
	logger       *slog.Logger
}

func NewService(store JobStore, orchestrator *Orchestrator, logger *slog.Logger) *Service {
	return &Service{
		store:        store,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// CreateJob はリクエストを検証し、pending状態のジョブを登録する
func (s *Service) CreateJob(ctx context.Context, req GenerationRequest) (*Job, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := s.store.Create(ctx, CreateJobParams{
		ID:              uuid.New().String(),
		Topic:           req.Topic,
		TargetWordCount: req.TargetWordCount,
		Language:        req.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	metrics.JobsCreated.Inc()
	s.logger.Info("job created",
		slog.String("jobID", job.ID),
		slog.String("topic", job.Topic),
		slog.Int("targetWordCount", job.TargetWordCount),
	)
	return job, nil
}

// GetJob はジョブの現在状態を返す
func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Generate は登録済みジョブのパイプラインを実行する。
// 呼び出し側はこれを専用のゴルーチンで呼ぶことを想定している。
func (s *Service) Generate(ctx context.Context, jobID string, req GenerationRequest) error {
	req.Normalize()
	return s.orchestrator.Run(ctx, jobID, req)
}
