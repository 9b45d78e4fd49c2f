package usecase

import (
	"multi-agent-chat/internal/chat"
	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/internal/streaming"
	"multi-agent-chat/pkg/log"
)

type implUseCase struct {
	l        log.Logger
	pipeline pipeline.UseCase
	runner   *streaming.Runner
	active   *registry
}

// New creates the chat use case.
func New(l log.Logger, p pipeline.UseCase, runner *streaming.Runner) chat.UseCase {
	return &implUseCase{
		l:        l,
		pipeline: p,
		runner:   runner,
		active:   newRegistry(),
	}
}
