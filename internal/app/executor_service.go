package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"instructo-gateway/internal/model"
)

var ErrBadUpstream = errors.New("upstream service failed")

// CodeRunner abstracts the executor HTTP client.
type CodeRunner interface {
	Submit(ctx context.Context, language string, payload []byte) (string, error)
}

// SubmissionSink receives submission events for async persistence.
type SubmissionSink interface {
	Publish(ctx context.Context, submission model.Submission) error
}

// SubmissionLister reads back the persisted history.
type SubmissionLister interface {
	ListByUserID(userID uint) ([]model.Submission, error)
}

// ExecutorService forwards code to the execution service and records
// each attempt in the submission history.
type ExecutorService struct {
	runner    CodeRunner
	publisher SubmissionSink
	lister    SubmissionLister
}

type SubmitCodeInput struct {
	UserID   uint
	Language string
	Payload  []byte
	Code     string
}

func NewExecutorService(runner CodeRunner, publisher SubmissionSink, lister SubmissionLister) *ExecutorService {
	return &ExecutorService{
		runner:    runner,
		publisher: publisher,
		lister:    lister,
	}
}

// SubmitCode relays the opaque payload downstream and returns the
// result verbatim. The history event is best-effort: a broker outage
// must not fail a submission that already executed.
func (s *ExecutorService) SubmitCode(ctx context.Context, input SubmitCodeInput) (string, error) {
	language := strings.TrimSpace(input.Language)
	if language == "" || len(input.Payload) == 0 {
		return "", ErrInvalidInput
	}

	result, err := s.runner.Submit(ctx, language, input.Payload)
	if err != nil {
		log.Printf("executor call failed: %v", err)
		return "", ErrBadUpstream
	}

	if s.publisher != nil {
		event := model.Submission{
			UserID:   input.UserID,
			Language: language,
			Code:     input.Code,
			Result:   result,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish submission event failed: %v", err)
		}
	}
	return result, nil
}

func (s *ExecutorService) ListSubmissions(userID uint) ([]model.Submission, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.lister.ListByUserID(userID)
}
