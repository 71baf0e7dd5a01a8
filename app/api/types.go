package api

import (
	"context"

	"dailydigest/app/database"
)

// DispatcherInterface triggers an external pipeline run.
type DispatcherInterface interface {
	Dispatch(ctx context.Context) error
}

var _ DispatcherInterface = (*GithubDispatcher)(nil)

type Handler struct {
	digestRepo   database.DigestRepository
	feedbackRepo database.FeedbackRepository
	dispatcher   DispatcherInterface
	version      string
}

// VoteRequest is the body of POST /api/feedback.
type VoteRequest struct {
	Date       string `json:"date"`
	ArticleID  string `json:"articleId"`
	Title      string `json:"title"`
	SourceName string `json:"sourceName"`
	Vote       string `json:"vote"`
}
