package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jinford/seo-writer/internal/core/article"
)

// GenerateAction は記事を1件同期生成し、結果を標準出力へJSONで書き出す
func GenerateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	service := appCtx.Container.Service
	logger := appCtx.Container.Logger

	req := article.GenerationRequest{
		Topic:           cmd.String("topic"),
		TargetWordCount: int(cmd.Int("words")),
		Language:        cmd.String("language"),
	}

	job, err := service.CreateJob(ctx, req)
	if err != nil {
		return err
	}

	if err := service.Generate(ctx, job.ID, req); err != nil {
		logger.Error("generation failed", slog.String("jobID", job.ID), slog.Any("error", err))
		// 失敗してもジョブに記録された内容を出力する
	}

	result, err := service.GetJob(ctx, job.ID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
