package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinford/seo-writer/internal/platform/metrics"
)

const (
	// DefaultJobTimeout はジョブ1件あたりの実行時間上限のデフォルト値
	DefaultJobTimeout = 10 * time.Minute

	serpResultCount = 10
)

// Orchestrator は記事生成パイプライン全体を統括する。
// 1ジョブの実行は Run 1回の呼び出しに対応し、途中経過はチェックポイントとして、
// 最終結果は完了または失敗としてストアへ記録される。
type Orchestrator struct {
	store      JobStore
	serp       SERPProvider
	analyzer   *SERPAnalyzer
	outliner   *OutlineGenerator
	writer     *ContentGenerator
	metadata   *MetadataGenerator
	publisher  EventPublisher
	jobTimeout time.Duration
	logger     *slog.Logger
}

type OrchestratorOption func(*Orchestrator)

// WithJobTimeout はジョブの実行時間上限を設定する
func WithJobTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.jobTimeout = d
		}
	}
}

// WithEventPublisher は終端状態到達時のイベント配信先を設定する
func WithEventPublisher(p EventPublisher) OrchestratorOption {
	return func(o *Orchestrator) {
		o.publisher = p
	}
}

func NewOrchestrator(store JobStore, serp SERPProvider, llm TextGenerator, logger *slog.Logger, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		store:      store,
		serp:       serp,
		analyzer:   NewSERPAnalyzer(llm),
		outliner:   NewOutlineGenerator(llm),
		writer:     NewContentGenerator(llm),
		metadata:   NewMetadataGenerator(llm),
		jobTimeout: DefaultJobTimeout,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run はジョブ1件のパイプラインを最初から最後まで実行する。
// いずれかのステップが失敗した時点で残りは実行せず、ジョブを失敗として記録する。
func (o *Orchestrator) Run(ctx context.Context, jobID string, req GenerationRequest) error {
	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, o.jobTimeout)
	defer cancel()

	logger := o.logger.With(slog.String("jobID", jobID), slog.String("topic", req.Topic))
	logger.Info("starting article generation pipeline",
		slog.Int("targetWordCount", req.TargetWordCount),
		slog.String("language", req.Language),
	)

	if err := o.store.SetStatus(runCtx, jobID, StatusRunning); err != nil {
		return fmt.Errorf("failed to mark job as running: %w", err)
	}

	output, err := o.execute(runCtx, logger, jobID, req)
	if err != nil {
		err = o.classify(runCtx, err)
		logger.Error("pipeline failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(start)))

		// タイムアウト済みのコンテキストでも失敗の記録だけは行う
		failCtx := context.WithoutCancel(runCtx)
		if ferr := o.store.Fail(failCtx, jobID, fmt.Sprintf("generation failed: %v", err)); ferr != nil {
			logger.Error("failed to persist job failure", slog.Any("error", ferr))
		}
		o.publish(failCtx, logger, JobEvent{
			JobID:  jobID,
			Status: StatusFailed,
			Topic:  req.Topic,
			Error:  err.Error(),
		})
		metrics.JobsFinished.WithLabelValues(string(StatusFailed)).Inc()
		metrics.JobDuration.Observe(time.Since(start).Seconds())
		return err
	}

	doneCtx := context.WithoutCancel(runCtx)
	if err := o.store.Complete(doneCtx, jobID, output); err != nil {
		logger.Error("failed to persist job result", slog.Any("error", err))
		return fmt.Errorf("failed to persist job result: %w", err)
	}
	o.publish(doneCtx, logger, JobEvent{
		JobID:        jobID,
		Status:       StatusCompleted,
		Topic:        req.Topic,
		QualityScore: output.QualityReport.Score,
	})
	metrics.JobsFinished.WithLabelValues(string(StatusCompleted)).Inc()
	metrics.JobDuration.Observe(time.Since(start).Seconds())
	metrics.QualityScore.Observe(float64(output.QualityReport.Score))

	logger.Info("pipeline completed",
		slog.Int("wordCount", output.Article.WordCount),
		slog.Int("qualityScore", output.QualityReport.Score),
		slog.Bool("qualityPassed", output.QualityReport.Passed),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, logger *slog.Logger, jobID string, req GenerationRequest) (*ArticleOutput, error) {
	logger.Info("step 1/10: fetching search results")
	results, err := o.serp.Search(ctx, req.Topic, serpResultCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search results: %w", err)
	}
	o.saveCheckpoint(ctx, logger, jobID, CheckpointSERPData, results)

	logger.Info("step 2/10: analyzing competitors", slog.Int("resultCount", len(results)))
	insights, err := o.analyzer.Analyze(ctx, req.Topic, results)
	if err != nil {
		return nil, err
	}

	logger.Info("step 3/10: building outline", slog.String("primaryKeyword", insights.PrimaryKeyword))
	outline, err := o.outliner.Generate(ctx, req.Topic, insights, req.TargetWordCount)
	if err != nil {
		return nil, err
	}
	o.saveCheckpoint(ctx, logger, jobID, CheckpointOutlineData, outline)

	logger.Info("step 4/10: writing content", slog.Int("sectionCount", len(outline.Sections)))
	content, err := o.writer.Generate(ctx, outline, insights.PrimaryKeyword, req.Language)
	if err != nil {
		return nil, err
	}

	logger.Info("step 5/10: generating seo metadata", slog.Int("wordCount", content.WordCount))
	metadata, err := o.metadata.GenerateMetadata(ctx, content, insights.PrimaryKeyword)
	if err != nil {
		return nil, err
	}

	logger.Info("step 6/10: suggesting internal links")
	internalLinks, err := o.metadata.GenerateInternalLinks(ctx, req.Topic, content)
	if err != nil {
		return nil, err
	}

	logger.Info("step 7/10: suggesting external references")
	references, err := o.metadata.GenerateExternalReferences(ctx, req.Topic)
	if err != nil {
		return nil, err
	}

	logger.Info("step 8/10: analyzing keyword density")
	keywords := AnalyzeKeywords(content, insights.PrimaryKeyword, insights.SecondaryKeywords)

	logger.Info("step 9/10: scoring quality")
	quality := ScoreQuality(content, metadata, req.TargetWordCount)

	logger.Info("step 10/10: assembling output", slog.Int("qualityScore", quality.Score))
	return &ArticleOutput{
		Article:            *content,
		SEOMetadata:        *metadata,
		KeywordAnalysis:    keywords,
		InternalLinks:      internalLinks,
		ExternalReferences: references,
		SERPAnalysis:       results,
		SERPInsights:       *insights,
		QualityReport:      quality,
	}, nil
}

// saveCheckpoint は途中経過を保存する。失敗してもパイプラインは止めない。
func (o *Orchestrator) saveCheckpoint(ctx context.Context, logger *slog.Logger, jobID string, name string, data any) {
	if err := o.store.SaveCheckpoint(ctx, jobID, name, data); err != nil {
		logger.Warn("failed to save checkpoint", slog.String("checkpoint", name), slog.Any("error", err))
	}
}

// classify は実行時間超過による失敗を ErrJobTimeout として区別する
func (o *Orchestrator) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || (ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		return fmt.Errorf("%w (limit: %s): %v", ErrJobTimeout, o.jobTimeout, err)
	}
	return err
}

func (o *Orchestrator) publish(ctx context.Context, logger *slog.Logger, event JobEvent) {
	if o.publisher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	event.Source = "seo-writer"
	if err := o.publisher.PublishJobEvent(ctx, event); err != nil {
		logger.Warn("failed to publish job event", slog.Any("error", err))
	}
}
