package article

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateJob(t *testing.T) {
	newService := func() *Service {
		store := newFakeJobStore()
		orchestrator := NewOrchestrator(store, &fakeSERP{}, &pipelineLLM{}, testLogger())
		return NewService(store, orchestrator, testLogger())
	}

	t.Run("有効なリクエストでpendingジョブが登録される", func(t *testing.T) {
		service := newService()

		job, err := service.CreateJob(context.Background(), GenerationRequest{
			Topic:           "home coffee brewing",
			TargetWordCount: 1200,
			Language:        "en",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, job.ID)
		assert.Equal(t, StatusPending, job.Status)
		assert.Equal(t, "home coffee brewing", job.Topic)
		assert.Equal(t, 1200, job.TargetWordCount)
		assert.False(t, job.CreatedAt.IsZero())

		// 登録直後に照会できること
		got, err := service.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, job.ID, got.ID)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("未指定のフィールドにはデフォルト値が入る", func(t *testing.T) {
		service := newService()

		job, err := service.CreateJob(context.Background(), GenerationRequest{
			Topic: "  home coffee brewing  ",
		})
		require.NoError(t, err)

		assert.Equal(t, "home coffee brewing", job.Topic)
		assert.Equal(t, DefaultTargetWordCount, job.TargetWordCount)
		assert.Equal(t, DefaultLanguage, job.Language)
	})

	t.Run("バリデーション違反は ErrInvalidRequest", func(t *testing.T) {
		tests := []struct {
			name string
			req  GenerationRequest
		}{
			{"トピックが短すぎる", GenerationRequest{Topic: "ab"}},
			{"トピックが長すぎる", GenerationRequest{Topic: strings.Repeat("x", 201)}},
			{"空白のみのトピック", GenerationRequest{Topic: "   "}},
			{"目標語数が少なすぎる", GenerationRequest{Topic: "valid topic", TargetWordCount: 499}},
			{"目標語数が多すぎる", GenerationRequest{Topic: "valid topic", TargetWordCount: 5001}},
			{"大文字の言語コード", GenerationRequest{Topic: "valid topic", Language: "EN"}},
			{"3文字の言語コード", GenerationRequest{Topic: "valid topic", Language: "eng"}},
			{"数字を含む言語コード", GenerationRequest{Topic: "valid topic", Language: "e1"}},
		}

		service := newService()
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.CreateJob(context.Background(), tt.req)
				assert.ErrorIs(t, err, ErrInvalidRequest)
			})
		}
	})

	t.Run("境界値は受け付ける", func(t *testing.T) {
		service := newService()

		for _, req := range []GenerationRequest{
			{Topic: "abc"},
			{Topic: strings.Repeat("x", 200)},
			{Topic: "valid topic", TargetWordCount: 500},
			{Topic: "valid topic", TargetWordCount: 5000},
			{Topic: "valid topic", Language: "ja"},
		} {
			_, err := service.CreateJob(context.Background(), req)
			assert.NoError(t, err)
		}
	})
}

func TestService_GetJob(t *testing.T) {
	store := newFakeJobStore()
	service := NewService(store, NewOrchestrator(store, &fakeSERP{}, &pipelineLLM{}, testLogger()), testLogger())

	_, err := service.GetJob(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Generate(t *testing.T) {
	store := newFakeJobStore()
	service := NewService(store, NewOrchestrator(store, &fakeSERP{}, &pipelineLLM{}, testLogger()), testLogger())

	job, err := service.CreateJob(context.Background(), GenerationRequest{Topic: "home coffee brewing"})
	require.NoError(t, err)

	err = service.Generate(context.Background(), job.ID, GenerationRequest{Topic: job.Topic})
	require.NoError(t, err)

	got, err := service.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.NotEmpty(t, got.Result.Article.FullText)
}
