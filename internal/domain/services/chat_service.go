package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/Adinlo/colrag/pkg/errors"
	"github.com/Adinlo/colrag/pkg/logger"
	"go.uber.org/zap"
)

type ChatService struct {
	userRepo   repositories.UserRepository
	workspaces *WorkspaceService
	query      QueryPipeline
}

func NewChatService(
	userRepo repositories.UserRepository,
	workspaces *WorkspaceService,
	query QueryPipeline,
) *ChatService {
	return &ChatService{
		userRepo:   userRepo,
		workspaces: workspaces,
		query:      query,
	}
}

// History returns the user's stored transcript. A user with no history
// yet gets an empty array, not an error.
func (s *ChatService) History(ctx context.Context, userID string) (json.RawMessage, error) {
	history, err := s.userRepo.GetChatHistory(ctx, userID)
	if err != nil {
		return nil, errors.NewNotFoundError("failed to get chat history")
	}
	if len(history) == 0 {
		return json.RawMessage("[]"), nil
	}
	return history, nil
}

// Send runs the retrieval pipeline for the collection's workspace and
// persists the exchange into the user's transcript. Only the workspace
// creator may chat against its collection.
func (s *ChatService) Send(ctx context.Context, userID, collection, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.NewBadRequestError("message is required")
	}

	workspace, err := s.workspaces.ResolveCollection(ctx, collection)
	if err != nil {
		return "", err
	}

	if workspace.CreatorID != userID {
		return "", errors.NewForbiddenError("you are not authorized to access this collection")
	}

	answer, err := s.query.Run(ctx, workspace.Collection, message)
	if err != nil {
		logger.Error("retrieval pipeline failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return "", errors.NewInternalError("failed to answer message")
	}

	if err := s.appendExchange(ctx, userID, collection, message, answer); err != nil {
		// the answer was produced; losing one transcript entry is
		// logged, not fatal
		logger.Warn("failed to persist chat exchange",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	return answer, nil
}

// appendExchange does the read-modify-write of the transcript blob.
func (s *ChatService) appendExchange(ctx context.Context, userID, collection, question, answer string) error {
	stored, err := s.userRepo.GetChatHistory(ctx, userID)
	if err != nil {
		return err
	}

	var entries []entities.ChatEntry
	if len(stored) > 0 {
		// an unreadable transcript starts over rather than blocking chat
		if err := json.Unmarshal(stored, &entries); err != nil {
			logger.Warn("resetting unreadable chat history", zap.String("user_id", userID))
			entries = nil
		}
	}

	now := time.Now()
	entries = append(entries,
		entities.ChatEntry{Role: "user", Collection: collection, Content: question, At: now},
		entities.ChatEntry{Role: "assistant", Collection: collection, Content: answer, At: now},
	)

	updated, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateChatHistory(ctx, userID, updated)
}
