package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jinford/seo-writer/internal/core/article"
)

// uniqueViolationCode はPostgreSQLの一意制約違反エラーコード
const uniqueViolationCode = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS article_jobs (
	id                TEXT PRIMARY KEY,
	topic             TEXT NOT NULL,
	target_word_count INTEGER NOT NULL,
	language          TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'pending',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at      TIMESTAMPTZ,
	checkpoints       JSONB NOT NULL DEFAULT '{}'::jsonb,
	result            JSONB,
	error             TEXT
);
CREATE INDEX IF NOT EXISTS idx_article_jobs_status ON article_jobs (status);
`

// JobRepository は article.JobStore のPostgreSQL実装
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// InitSchema はジョブテーブルを作成します(存在しない場合のみ)
func (r *JobRepository) InitSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Create はpending状態のジョブを登録します
func (r *JobRepository) Create(ctx context.Context, params article.CreateJobParams) (*article.Job, error) {
	query := `
		INSERT INTO article_jobs (id, topic, target_word_count, language, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	var createdAt time.Time
	err := r.pool.QueryRow(ctx, query,
		params.ID, params.Topic, params.TargetWordCount, params.Language, article.StatusPending,
	).Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", article.ErrDuplicateJob, params.ID)
		}
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}

	return &article.Job{
		ID:              params.ID,
		Topic:           params.Topic,
		TargetWordCount: params.TargetWordCount,
		Language:        params.Language,
		Status:          article.StatusPending,
		CreatedAt:       createdAt,
		Checkpoints:     map[string]json.RawMessage{},
	}, nil
}

// Get はジョブの現在状態を取得します
func (r *JobRepository) Get(ctx context.Context, id string) (*article.Job, error) {
	query := `
		SELECT id, topic, target_word_count, language, status,
		       created_at, completed_at, checkpoints, result, error
		FROM article_jobs
		WHERE id = $1`

	var (
		job         article.Job
		status      string
		checkpoints []byte
		result      []byte
		errMsg      *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Topic, &job.TargetWordCount, &job.Language, &status,
		&job.CreatedAt, &job.CompletedAt, &checkpoints, &result, &errMsg,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", article.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.Status = article.JobStatus(status)
	if errMsg != nil {
		job.Error = *errMsg
	}
	if len(checkpoints) > 0 {
		if err := json.Unmarshal(checkpoints, &job.Checkpoints); err != nil {
			return nil, fmt.Errorf("failed to decode checkpoints: %w", err)
		}
	}
	if len(result) > 0 {
		var output article.ArticleOutput
		if err := json.Unmarshal(result, &output); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
		job.Result = &output
	}
	return &job, nil
}

// SetStatus はジョブの状態を更新します
func (r *JobRepository) SetStatus(ctx context.Context, id string, status article.JobStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE article_jobs SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	return nil
}

// SaveCheckpoint はパイプラインの途中経過を既存のチェックポイント群にマージします
func (r *JobRepository) SaveCheckpoint(ctx context.Context, id string, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint %q: %w", name, err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE article_jobs
		 SET checkpoints = checkpoints || jsonb_build_object($2::text, $3::jsonb)
		 WHERE id = $1`,
		id, name, payload)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", article.ErrNotFound, id)
	}
	return nil
}

// Complete はジョブを完了状態へ遷移させます。終端状態からの遷移は拒否されます。
func (r *JobRepository) Complete(ctx context.Context, id string, result *article.ArticleOutput) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE article_jobs
		 SET status = $2, result = $3, completed_at = now()
		 WHERE id = $1 AND status NOT IN ($4, $5)`,
		id, article.StatusCompleted, payload, article.StatusCompleted, article.StatusFailed)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

// Fail はジョブを失敗状態へ遷移させます。終端状態からの遷移は拒否されます。
func (r *JobRepository) Fail(ctx context.Context, id string, message string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE article_jobs
		 SET status = $2, error = $3, completed_at = now()
		 WHERE id = $1 AND status NOT IN ($4, $5)`,
		id, article.StatusFailed, message, article.StatusCompleted, article.StatusFailed)
	if err != nil {
		return fmt.Errorf("failed to mark job as failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

// transitionConflict は更新が0行だった原因(不在か終端済みか)を区別します
func (r *JobRepository) transitionConflict(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", article.ErrInvalidTransition, id)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

// インターフェース実装の確認
var _ article.JobStore = (*JobRepository)(nil)
