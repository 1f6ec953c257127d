package article

import "context"

// CreateJobParams は新規ジョブ作成時の入力
type CreateJobParams struct {
	ID              string
	Topic           string
	TargetWordCount int
	Language        string
}

// JobStore はジョブの永続化を抽象化する
//
// 実装は以下を保証すること:
//   - Create は同一IDの二重作成に対して ErrDuplicateJob を返す
//   - Complete / Fail は終端状態のジョブに対して ErrInvalidTransition を返す
//   - 存在しないIDへの操作は ErrNotFound を返す
type JobStore interface {
	Create(ctx context.Context, params CreateJobParams) (*Job, error)
	Get(ctx context.Context, id string) (*Job, error)
	SetStatus(ctx context.Context, id string, status JobStatus) error
	SaveCheckpoint(ctx context.Context, id string, name string, data any) error
	Complete(ctx context.Context, id string, result *ArticleOutput) error
	Fail(ctx context.Context, id string, message string) error
}
