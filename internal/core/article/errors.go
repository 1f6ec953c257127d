package article

import "errors"

var (
	// ErrNotFound は指定IDのジョブが存在しないことを表す
	ErrNotFound = errors.New("job not found")

	// ErrDuplicateJob は同一IDのジョブが既に存在することを表す
	ErrDuplicateJob = errors.New("job already exists")

	// ErrInvalidTransition は終端状態のジョブへの更新が拒否されたことを表す
	ErrInvalidTransition = errors.New("job already reached a terminal state")

	// ErrInvalidRequest は生成リクエストのバリデーション違反を表す
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrMalformedOutput は構造化出力が規定回数のリトライ後もパースできなかったことを表す
	ErrMalformedOutput = errors.New("malformed structured output")

	// ErrProviderUnavailable は外部プロバイダの呼び出しが継続不能な形で失敗したことを表す
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrJobTimeout はジョブが実行時間の上限を超えたことを表す
	ErrJobTimeout = errors.New("job exceeded its time budget")
)
