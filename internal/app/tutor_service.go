package app

import (
	"context"
	"errors"
	"log"
	"strings"
)

var ErrLanguageRequired = errors.New("language is required")

// TutorGateway abstracts the tutor HTTP client.
type TutorGateway interface {
	GenerateQuiz(ctx context.Context, language string) (string, error)
	Post(ctx context.Context, path string, payload []byte) (string, error)
}

// QuizStore caches generated quizzes per language.
type QuizStore interface {
	Get(ctx context.Context, language string) (string, bool, error)
	Set(ctx context.Context, language, quiz string) error
}

// TutorService relays tutoring requests. Payloads stay opaque end to
// end; quiz generation is the only cached path because it is the only
// one keyed by a small stable input.
type TutorService struct {
	gateway TutorGateway
	cache   QuizStore
}

func NewTutorService(gateway TutorGateway, cache QuizStore) *TutorService {
	return &TutorService{
		gateway: gateway,
		cache:   cache,
	}
}

func (s *TutorService) GenerateQuiz(ctx context.Context, language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return "", ErrLanguageRequired
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, language)
		if err != nil {
			log.Printf("quiz cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	quiz, err := s.gateway.GenerateQuiz(ctx, language)
	if err != nil {
		log.Printf("tutor quiz call failed: %v", err)
		return "", ErrBadUpstream
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, language, quiz); err != nil {
			log.Printf("quiz cache write failed: %v", err)
		}
	}
	return quiz, nil
}

// Forward posts the raw payload to a tutor path and returns the
// response verbatim.
func (s *TutorService) Forward(ctx context.Context, path string, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", ErrInvalidInput
	}

	result, err := s.gateway.Post(ctx, path, payload)
	if err != nil {
		log.Printf("tutor call %s failed: %v", path, err)
		return "", ErrBadUpstream
	}
	return result, nil
}
