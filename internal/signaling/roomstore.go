package signaling

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const roomMembershipTTL = 5 * time.Minute

// RoomStore tracks which peers belong to which room. The production
// implementation is Redis-backed (CherryExchange keeps room membership
// in Redis too); tests use an in-memory fake.
type RoomStore interface {
	CreateRoom(ctx context.Context) (string, error)
	JoinRoom(ctx context.Context, roomID, peerID string) ([]string, error)
	LeaveRoom(ctx context.Context, roomID, peerID string) error
	Touch(ctx context.Context, roomID string) error
	Peers(ctx context.Context, roomID string) ([]string, error)
}

// RedisRoomStore stores each room's membership as a Redis SET keyed
// "room:<id>:peers", with a TTL refreshed on every ping so abandoned
// rooms expire instead of accumulating forever.
type RedisRoomStore struct {
	client *redis.Client
}

// NewRedisRoomStore dials a Redis client lazily (go-redis connects on
// first use) against addr.
func NewRedisRoomStore(addr string) *RedisRoomStore {
	return &RedisRoomStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func roomKey(roomID string) string {
	return "room:" + roomID + ":peers"
}

// CreateRoom allocates a random room ID the same way Message
// transaction IDs are drawn: crypto/rand, not math/rand, since a
// guessable room ID would let an outsider join an in-progress
// exchange.
func (s *RedisRoomStore) CreateRoom(ctx context.Context) (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generating room id: %w", err)
	}
	roomID := hex.EncodeToString(buf[:])

	if err := s.client.Expire(ctx, roomKey(roomID), roomMembershipTTL).Err(); err != nil && err != redis.Nil {
		return "", fmt.Errorf("seeding room ttl: %w", err)
	}

	return roomID, nil
}

func (s *RedisRoomStore) JoinRoom(ctx context.Context, roomID, peerID string) ([]string, error) {
	key := roomKey(roomID)
	if err := s.client.SAdd(ctx, key, peerID).Err(); err != nil {
		return nil, fmt.Errorf("joining room %s: %w", roomID, err)
	}
	if err := s.client.Expire(ctx, key, roomMembershipTTL).Err(); err != nil {
		return nil, fmt.Errorf("refreshing room %s ttl: %w", roomID, err)
	}

	return s.Peers(ctx, roomID)
}

func (s *RedisRoomStore) LeaveRoom(ctx context.Context, roomID, peerID string) error {
	if err := s.client.SRem(ctx, roomKey(roomID), peerID).Err(); err != nil {
		return fmt.Errorf("leaving room %s: %w", roomID, err)
	}

	return nil
}

// Touch refreshes a room's TTL, called on every ping envelope so a
// room with an active connection never expires mid-session.
func (s *RedisRoomStore) Touch(ctx context.Context, roomID string) error {
	if err := s.client.Expire(ctx, roomKey(roomID), roomMembershipTTL).Err(); err != nil {
		return fmt.Errorf("touching room %s: %w", roomID, err)
	}

	return nil
}

func (s *RedisRoomStore) Peers(ctx context.Context, roomID string) ([]string, error) {
	peers, err := s.client.SMembers(ctx, roomKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing peers for room %s: %w", roomID, err)
	}

	return peers, nil
}
