package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

// challengeTTL bounds how long a staff login may sit between the credentials
// step and the code step.
const challengeTTL = 10 * time.Minute

// challengeDoc is the stored form of a challenge. The password hash travels
// with it in register mode so account creation can be deferred until the
// access code is verified.
type challengeDoc struct {
	ID           string    `json:"id"`
	Mode         string    `json:"mode"`
	State        string    `json:"state"`
	Role         string    `json:"role"`
	UserID       string    `json:"user_id,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChallengeStore holds pending staff login challenges in Redis.
// Key format: staff_challenge:<id>
type ChallengeStore struct {
	client *redis.Client
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

// Save stores the challenge with the store's TTL.
func (s *ChallengeStore) Save(ctx context.Context, ch *ports.StaffLoginChallenge) error {
	doc := challengeDoc{
		ID:           ch.ID,
		Mode:         string(ch.Mode),
		State:        string(ch.State),
		Role:         string(ch.Role),
		UserID:       ch.UserID,
		Email:        ch.Email,
		PasswordHash: ch.PasswordHash,
		CreatedAt:    ch.CreatedAt,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, s.key(ch.ID), raw, challengeTTL).Err(); err != nil {
		return fmt.Errorf("save challenge: %w", err)
	}
	return nil
}

// Find retrieves a challenge; expired or unknown IDs yield
// domain.ErrChallengeNotFound.
func (s *ChallengeStore) Find(ctx context.Context, id string) (*ports.StaffLoginChallenge, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("find challenge: %w", err)
	}

	var doc challengeDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}

	return &ports.StaffLoginChallenge{
		ID:           doc.ID,
		Mode:         ports.StaffLoginMode(doc.Mode),
		State:        ports.StaffLoginState(doc.State),
		Role:         domain.Role(doc.Role),
		UserID:       doc.UserID,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// Delete removes a challenge eagerly (verification success or "back").
func (s *ChallengeStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	if n == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (s *ChallengeStore) key(id string) string {
	return "staff_challenge:" + id
}
