package article

import "context"

// SERPProvider は検索エンジン結果の取得を抽象化する
//
// 実装は取得不能時に決定的な代替結果へフォールバックしてよい。
// その場合でも返却件数は count を上限とする。
type SERPProvider interface {
	Search(ctx context.Context, query string, count int) ([]SERPResult, error)
}
