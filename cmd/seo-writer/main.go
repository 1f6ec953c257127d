package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/seo-writer/cmd/seo-writer/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "seo-writer",
		Usage: "SEO記事の自動生成バックエンド",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "HTTP APIサーバを起動",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "リッスンアドレス（省略時は環境変数またはデフォルトの:8000）",
					},
				},
				Action: commands.ServeAction,
			},
			{
				Name:  "generate",
				Usage: "記事を1件同期生成して結果をJSONで出力",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "topic",
						Usage:    "記事トピック",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "words",
						Usage: "目標語数",
						Value: 1500,
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "言語コード（ISO 639-1）",
						Value: "en",
					},
				},
				Action: commands.GenerateAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
