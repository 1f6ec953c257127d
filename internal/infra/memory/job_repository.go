// Package memory はプロセス内完結の article.JobStore 実装を提供する。
// 開発環境とテストでの利用を想定しており、プロセス終了でデータは失われる。
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jinford/seo-writer/internal/core/article"
)

// JobRepository はミューテックスで保護されたインメモリのジョブストア
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*article.Job
	now  func() time.Time
}

func NewJobRepository() *JobRepository {
	return &JobRepository{
		jobs: make(map[string]*article.Job),
		now:  time.Now,
	}
}

func (r *JobRepository) Create(_ context.Context, params article.CreateJobParams) (*article.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[params.ID]; ok {
		return nil, fmt.Errorf("%w: %s", article.ErrDuplicateJob, params.ID)
	}

	job := &article.Job{
		ID:              params.ID,
		Topic:           params.Topic,
		TargetWordCount: params.TargetWordCount,
		Language:        params.Language,
		Status:          article.StatusPending,
		CreatedAt:       r.now().UTC(),
		Checkpoints:     make(map[string]json.RawMessage),
	}
	r.jobs[params.ID] = job
	return copyJob(job), nil
}

func (r *JobRepository) Get(_ context.Context, id string) (*article.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	return copyJob(job), nil
}

func (r *JobRepository) SetStatus(_ context.Context, id string, status article.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	job.Status = status
	return nil
}

func (r *JobRepository) SaveCheckpoint(_ context.Context, id string, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	job.Checkpoints[name] = payload
	return nil
}

func (r *JobRepository) Complete(_ context.Context, id string, result *article.ArticleOutput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", article.ErrInvalidTransition, id)
	}

	completedAt := r.now().UTC()
	job.Status = article.StatusCompleted
	job.CompletedAt = &completedAt
	job.Result = result
	return nil
}

func (r *JobRepository) Fail(_ context.Context, id string, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", article.ErrInvalidTransition, id)
	}

	completedAt := r.now().UTC()
	job.Status = article.StatusFailed
	job.CompletedAt = &completedAt
	job.Error = message
	return nil
}

// copyJob は呼び出し側の変更がストア内部へ波及しないようコピーを返す
func copyJob(job *article.Job) *article.Job {
	cp := *job
	cp.Checkpoints = make(map[string]json.RawMessage, len(job.Checkpoints))
	for k, v := range job.Checkpoints {
		cp.Checkpoints[k] = v
	}
	if job.CompletedAt != nil {
		t := *job.CompletedAt
		cp.CompletedAt = &t
	}
	if job.Result != nil {
		cp.Result = copyResult(job.Result)
	}
	return &cp
}

// copyResult は成果物に含まれるスライスまで複製し、ストア内部との共有をなくす
func copyResult(result *article.ArticleOutput) *article.ArticleOutput {
	cp := *result
	cp.Article.Sections = slices.Clone(result.Article.Sections)
	cp.KeywordAnalysis.SecondaryKeywords = slices.Clone(result.KeywordAnalysis.SecondaryKeywords)
	cp.InternalLinks = slices.Clone(result.InternalLinks)
	cp.ExternalReferences = slices.Clone(result.ExternalReferences)
	cp.SERPAnalysis = slices.Clone(result.SERPAnalysis)
	cp.SERPInsights.SecondaryKeywords = slices.Clone(result.SERPInsights.SecondaryKeywords)
	cp.SERPInsights.CommonTopics = slices.Clone(result.SERPInsights.CommonTopics)
	cp.SERPInsights.Subtopics = slices.Clone(result.SERPInsights.Subtopics)
	cp.SERPInsights.ContentGaps = slices.Clone(result.SERPInsights.ContentGaps)
	cp.SERPInsights.RecommendedHeadings = slices.Clone(result.SERPInsights.RecommendedHeadings)
	cp.QualityReport.Issues = slices.Clone(result.QualityReport.Issues)
	return &cp
}

// インターフェース実装の確認
var _ article.JobStore = (*JobRepository)(nil)
