package usecase

import (
	"context"
	"fmt"
	"strings"

	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/pkg/stream"
)

const logPrefix = "internal.pipeline.usecase.Handle"

// Handle runs classify (classified families only), specialize and visualize
// (routes that ask for it) strictly in sequence. Only specialize gets full
// memory scope.
func (uc *implUseCase) Handle(ctx context.Context, req pipeline.Request, emit pipeline.Emitter) error {
	family, ok := uc.families[req.Family]
	if !ok {
		return fmt.Errorf("%w: %s", pipeline.ErrUnknownFamily, req.Family)
	}
	if strings.TrimSpace(req.Message) == "" {
		return pipeline.ErrEmptyMessage
	}

	grant := uc.newGrant(req.ConversationID)

	route := family.Routes[0]
	if family.Classified() {
		if err := emit.Emit(stream.Status{Message: pipeline.StatusClassifying, Stage: pipeline.StageClassify}); err != nil {
			return err
		}
		decision, err := uc.router.Classify(ctx, family.Name, req.Message)
		if err != nil {
			return uc.stageFailed(ctx, pipeline.StageClassify, err)
		}
		route = family.Route(decision.Route)
	}

	mem, err := grant.full()
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", logPrefix, err)
		return &pipeline.StageError{Stage: pipeline.StageSpecialize, Err: err}
	}
	pending := newPendingMemory(mem)

	answer, err := uc.specialize(ctx, req, family, route, pending, emit)
	if err != nil {
		return err
	}

	var payload model.Content
	var visErr error
	if route.Visualize {
		payload, visErr = uc.visualize(ctx, req, family, answer, emit)
	}

	// the answer was delivered in full, so its turn is stored even if the
	// visualization failed or the client has gone
	if err := pending.commit(context.WithoutCancel(ctx), payload); err != nil {
		uc.l.Errorf(ctx, "%s: record turn: %v", logPrefix, err)
		if visErr == nil {
			return uc.stageFailed(ctx, pipeline.StageSpecialize, err)
		}
	}
	if visErr != nil {
		return visErr
	}

	return uc.emitPayload(payload, emit)
}

func (uc *implUseCase) specialize(
	ctx context.Context,
	req pipeline.Request,
	family pipeline.Family,
	route pipeline.Route,
	mem agent.Memory,
	emit pipeline.Emitter,
) (string, error) {
	if err := emit.Emit(stream.Status{
		Message: fmt.Sprintf(pipeline.StatusSpecializing, route.Name),
		Stage:   pipeline.StageSpecialize,
	}); err != nil {
		return "", err
	}

	unit := uc.units[unitKey(family.Name, route.Name)]
	res, err := unit.Invoke(ctx, agent.Invocation{
		ConversationID: req.ConversationID,
		Input:          req.Message,
		Scope:          model.MemoryFull,
	}, mem, func(delta string) error {
		return emit.Emit(stream.Chunk{Value: delta})
	})
	if err != nil {
		return "", uc.stageFailed(ctx, pipeline.StageSpecialize, err)
	}

	uc.l.Infof(ctx, "%s: %s/%s answered conversation %s", logPrefix, family.Name, route.Name, req.ConversationID)
	return res.Text, nil
}

func (uc *implUseCase) visualize(ctx context.Context, req pipeline.Request, family pipeline.Family, answer string, emit pipeline.Emitter) (model.Content, error) {
	if err := emit.Emit(stream.Status{Message: pipeline.StatusVisualizing, Stage: pipeline.StageVisualize}); err != nil {
		return model.Content{}, err
	}

	content, ok, err := uc.visualizer.Visualize(ctx, family.Name, req.Message, answer)
	if err != nil {
		return model.Content{}, uc.stageFailed(ctx, pipeline.StageVisualize, err)
	}
	if !ok {
		return model.Content{}, nil
	}
	return content, nil
}

func (uc *implUseCase) emitPayload(content model.Content, emit pipeline.Emitter) error {
	switch {
	case content.Table != nil:
		return emit.Emit(stream.Table{Value: content.Table.Description, TableData: content.Table.Rows})
	case content.Chart != nil:
		return emit.Emit(stream.Chart{
			Value:       content.Chart.Description,
			PlotData:    content.Chart.PlotData,
			Artifact:    content.Chart.Artifact,
			Interactive: content.Chart.Interactive,
		})
	}
	return nil
}

// stageFailed tags err with stage. Cancellation passes through untagged so the
// stream session can tell it apart from an agent failure.
func (uc *implUseCase) stageFailed(ctx context.Context, stage string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	uc.l.Warnf(ctx, "%s: %s stage failed: %v", logPrefix, stage, err)
	return &pipeline.StageError{Stage: stage, Err: err}
}

// Families implements pipeline.UseCase.
func (uc *implUseCase) Families() []string {
	out := make([]string, len(uc.order))
	copy(out, uc.order)
	return out
}
