package usecase

import (
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/pkg/log"
)

// implUseCase is the private implementation of conversation.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

// New creates a new conversation UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
