// Package repositorytest holds behaviour tests shared by every
// repository.Repository implementation.
package repositorytest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-agent-chat/internal/conversation"
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/model"
)

// Factory returns a fresh, empty repository. The suite closes it.
type Factory func(t *testing.T) repository.Repository

// Run exercises the repository contract.
func Run(t *testing.T, newRepo Factory) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newRepo(t)) })
	t.Run("CreateDuplicate", func(t *testing.T) { testCreateDuplicate(t, newRepo(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newRepo(t)) })
	t.Run("AppendAssignsSeq", func(t *testing.T) { testAppendAssignsSeq(t, newRepo(t)) })
	t.Run("AppendCreatesConversation", func(t *testing.T) { testAppendCreatesConversation(t, newRepo(t)) })
	t.Run("AppendRequiresConversationID", func(t *testing.T) { testAppendRequiresID(t, newRepo(t)) })
	t.Run("HistoryLimit", func(t *testing.T) { testHistoryLimit(t, newRepo(t)) })
	t.Run("HistoryUnknownConversation", func(t *testing.T) { testHistoryUnknown(t, newRepo(t)) })
	t.Run("StructuredContent", func(t *testing.T) { testStructuredContent(t, newRepo(t)) })
	t.Run("ConversationsAreIndependent", func(t *testing.T) { testIndependent(t, newRepo(t)) })
	t.Run("ConcurrentAppendsAcrossConversations", func(t *testing.T) { testConcurrent(t, newRepo(t)) })
}

func closeRepo(t *testing.T, r repository.Repository) {
	t.Cleanup(func() { r.Close() })
}

func testCreateAndGet(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	c, err := r.CreateConversation(ctx, repository.CreateConversationOptions{})
	require.NoError(t, err)
	assert.True(t, conversation.ValidID(c.ID))

	got, err := r.GetConversation(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Zero(t, got.TurnCount)
}

func testCreateDuplicate(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	_, err := r.CreateConversation(ctx, repository.CreateConversationOptions{ID: "fixed"})
	require.NoError(t, err)
	_, err = r.CreateConversation(ctx, repository.CreateConversationOptions{ID: "fixed"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func testGetMissing(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	_, err := r.GetConversation(context.Background(), "nope")
	assert.ErrorIs(t, err, conversation.ErrConversationNotFound)
}

func testAppendAssignsSeq(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		turn, err := r.AppendTurn(ctx, model.NewTurn("c1", "market", "Hi", model.Content{Text: fmt.Sprintf("answer %d", i)}))
		require.NoError(t, err)
		assert.Equal(t, int64(i), turn.Seq)
	}

	turns, err := r.ReadHistory(ctx, repository.ReadHistoryOptions{ConversationID: "c1"})
	require.NoError(t, err)
	require.Len(t, turns, 3)
	for i, turn := range turns {
		assert.Equal(t, int64(i+1), turn.Seq)
		assert.Equal(t, model.RoleUser, turn.User.Role)
		assert.Equal(t, "Hi", turn.User.Content.Text)
		assert.Equal(t, model.RoleAgent, turn.Agent.Role)
		assert.Equal(t, fmt.Sprintf("answer %d", i+1), turn.Agent.Content.Text)
		assert.Equal(t, "market", turn.AgentName)
	}
}

func testAppendCreatesConversation(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	_, err := r.AppendTurn(ctx, model.NewTurn("fresh", "news", "q", model.Content{Text: "a"}))
	require.NoError(t, err)

	c, err := r.GetConversation(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.TurnCount)
}

func testAppendRequiresID(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	_, err := r.AppendTurn(context.Background(), model.NewTurn("", "news", "q", model.Content{Text: "a"}))
	assert.ErrorIs(t, err, conversation.ErrInvalidConversationID)
}

func testHistoryLimit(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := r.AppendTurn(ctx, model.NewTurn("c1", "market", fmt.Sprintf("q%d", i), model.Content{Text: "a"}))
		require.NoError(t, err)
	}

	turns, err := r.ReadHistory(ctx, repository.ReadHistoryOptions{ConversationID: "c1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, int64(4), turns[0].Seq)
	assert.Equal(t, int64(5), turns[1].Seq)
	assert.Equal(t, "q5", turns[1].User.Content.Text)
}

func testHistoryUnknown(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	turns, err := r.ReadHistory(context.Background(), repository.ReadHistoryOptions{ConversationID: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func testStructuredContent(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	content := model.Content{
		Text:  "Prices below",
		Table: &model.Table{Description: "Prices", Rows: []map[string]any{{"sku": "A", "price": 3.5}}},
		Chart: &model.Chart{Description: "Trend", Artifact: "chart.png", Interactive: true},
	}
	_, err := r.AppendTurn(ctx, model.NewTurn("c1", "pricing", "show prices", content))
	require.NoError(t, err)

	turns, err := r.ReadHistory(ctx, repository.ReadHistoryOptions{ConversationID: "c1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, content, turns[0].Agent.Content)
}

func testIndependent(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	_, err := r.AppendTurn(ctx, model.NewTurn("a", "news", "q", model.Content{Text: "x"}))
	require.NoError(t, err)
	_, err = r.AppendTurn(ctx, model.NewTurn("a", "news", "q", model.Content{Text: "x"}))
	require.NoError(t, err)
	turn, err := r.AppendTurn(ctx, model.NewTurn("b", "news", "q", model.Content{Text: "y"}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), turn.Seq)
}

func testConcurrent(t *testing.T, r repository.Repository) {
	closeRepo(t, r)
	ctx := context.Background()

	const conversations, perConversation = 4, 10
	var wg sync.WaitGroup
	for c := 0; c < conversations; c++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < perConversation; i++ {
				if _, err := r.AppendTurn(ctx, model.NewTurn(id, "news", "q", model.Content{Text: "a"})); err != nil {
					t.Errorf("append %s: %v", id, err)
				}
			}
		}(fmt.Sprintf("conv-%d", c))
	}
	wg.Wait()

	for c := 0; c < conversations; c++ {
		turns, err := r.ReadHistory(ctx, repository.ReadHistoryOptions{ConversationID: fmt.Sprintf("conv-%d", c)})
		require.NoError(t, err)
		require.Len(t, turns, perConversation)
		for i, turn := range turns {
			assert.Equal(t, int64(i+1), turn.Seq)
		}
	}
}
