package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jinford/seo-writer/internal/core/article"
)

// jobResponse はジョブ照会APIのレスポンス形式
type jobResponse struct {
	JobID       string                 `json:"job_id"`
	Status      article.JobStatus      `json:"status"`
	Topic       string                 `json:"topic"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Result      *article.ArticleOutput `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

func toJobResponse(job *article.Job) jobResponse {
	return jobResponse{
		JobID:       job.ID,
		Status:      job.Status,
		Topic:       job.Topic,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
		Result:      job.Result,
		Error:       job.Error,
	}
}

// handleGenerateArticle はジョブを登録し、202を返して生成はバックグラウンドで進める
func (s *Server) handleGenerateArticle(c *gin.Context) {
	var req article.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	job, err := s.service.CreateJob(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, article.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("failed to create job", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	// リクエストのライフサイクルから切り離して生成を実行する
	go func() {
		normalized := article.GenerationRequest{
			Topic:           job.Topic,
			TargetWordCount: job.TargetWordCount,
			Language:        job.Language,
		}
		if err := s.service.Generate(context.Background(), job.ID, normalized); err != nil {
			s.logger.Error("background generation finished with error",
				slog.String("jobID", job.ID), slog.Any("error", err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  job.ID,
		"status":  job.Status,
		"message": "Article generation started. Poll /job/" + job.ID + " for status.",
	})
}

// handleGetJob はジョブの現在状態を返す
func (s *Server) handleGetJob(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := s.service.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found: " + jobID})
			return
		}
		s.logger.Error("failed to get job", slog.String("jobID", jobID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get job"})
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}
