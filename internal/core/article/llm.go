package article

import "context"

// TextGenerator はLLMサービスとのやり取りを抽象化する
type TextGenerator interface {
	// GenerateText はプロンプトに対する応答テキストを生成する
	GenerateText(ctx context.Context, prompt string, temperature float64) (string, error)
}
