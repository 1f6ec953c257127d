package article

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// 構造化出力のパース失敗に対する総試行回数
	structuredMaxAttempts = 3

	structuredTemperature = 0.7
)

const jsonOnlyInstruction = "\n\nIMPORTANT: Return ONLY valid JSON. No markdown, no code blocks, just pure JSON."

// generateStructured はプロンプトへの応答をJSONとしてパースし out に格納する。
// パース失敗はプロンプトを変えずに再試行し、規定回数を超えたら ErrMalformedOutput を返す。
// プロバイダ自体のエラーは再試行せずそのまま返す。
func generateStructured(ctx context.Context, llm TextGenerator, prompt string, out any) error {
	enhanced := prompt + jsonOnlyInstruction

	var lastErr error
	for attempt := 1; attempt <= structuredMaxAttempts; attempt++ {
		raw, err := llm.GenerateText(ctx, enhanced, structuredTemperature)
		if err != nil {
			return fmt.Errorf("failed to generate structured output: %w", err)
		}

		cleaned := stripCodeFence(raw)
		if !json.Valid([]byte(cleaned)) {
			lastErr = fmt.Errorf("response is not valid JSON")
			continue
		}
		if err := json.Unmarshal([]byte(cleaned), out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMalformedOutput, structuredMaxAttempts, lastErr)
}

// stripCodeFence はLLMが付与しがちなMarkdownコードフェンスを剥がす
func stripCodeFence(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
