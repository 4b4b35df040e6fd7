package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	conversationRepo "wayfare/database/repository/conversation"
	"wayfare/models"
	"wayfare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const snapshotPrefix = "convo:snap:"

// Store loads and persists conversation state.
type Store interface {
	// Load returns the state for a session, or the canonical default when no
	// record exists or the record belongs to another user. It never reports
	// the difference between the two (no existence leakage). Repository
	// failures are returned, not masked as a fresh conversation.
	Load(ctx context.Context, sessionID, userID string) (*models.ConversationState, error)
	// Save persists the state verbatim. Callers normalize before saving.
	Save(ctx context.Context, st *models.ConversationState) error
	// Exists reports whether a session record exists and is owned by the user.
	Exists(ctx context.Context, sessionID, userID string) (bool, error)
	// Delete removes the stored state and its snapshot.
	Delete(ctx context.Context, sessionID string) error
}

// DefaultStore is a Mongo-backed store with a Redis snapshot cache in front.
// Cache failures degrade silently to the repository.
type DefaultStore struct {
	Repo     conversationRepo.ConversationRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

func (s *DefaultStore) Load(ctx context.Context, sessionID, userID string) (*models.ConversationState, error) {
	if cached := s.loadSnapshot(ctx, sessionID); cached != nil {
		if cached.UserID == userID {
			return Normalize(cached), nil
		}
		// Foreign snapshot; fall through to the default below.
		return DefaultState(sessionID, userID), nil
	}

	stored, err := s.Repo.Get(ctx, sessionID)
	if err != nil {
		// Do not mask this as a fresh conversation: the turn's final Save
		// would overwrite the real record with a near-empty one.
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if stored == nil || stored.UserID != userID {
		return DefaultState(sessionID, userID), nil
	}
	return Normalize(stored), nil
}

func (s *DefaultStore) Save(ctx context.Context, st *models.ConversationState) error {
	if err := s.Repo.Upsert(ctx, st); err != nil {
		return fmt.Errorf("failed to persist conversation: %w", err)
	}
	s.saveSnapshot(ctx, st)
	return nil
}

func (s *DefaultStore) Exists(ctx context.Context, sessionID, userID string) (bool, error) {
	stored, err := s.Repo.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return stored != nil && stored.UserID == userID, nil
}

func (s *DefaultStore) Delete(ctx context.Context, sessionID string) error {
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, snapshotPrefix+sessionID).Err(); err != nil {
			utils.GetLogger().Debug("snapshot cache delete failed", zap.Error(err))
		}
	}
	return s.Repo.Delete(ctx, sessionID)
}

func (s *DefaultStore) loadSnapshot(ctx context.Context, sessionID string) *models.ConversationState {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, snapshotPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		utils.GetLogger().Debug("snapshot cache read failed", zap.Error(err))
		return nil
	}
	var st models.ConversationState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil
	}
	return &st
}

func (s *DefaultStore) saveSnapshot(ctx context.Context, st *models.ConversationState) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if err := s.Cache.Set(ctx, snapshotPrefix+st.SessionID, data, ttl).Err(); err != nil {
		utils.GetLogger().Debug("snapshot cache write failed", zap.Error(err))
	}
}
