package redis

import (
	"context"
	"strconv"

	"github.com/relist-app/relist/internal/db"
)

// ZAdd adds or updates a member with the given score.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRem removes a member.
func (s *Store) ZRem(ctx context.Context, key, member string) error {
	cmd := s.b().Zrem().Key(key).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZRem, Err: err}
	}
	return nil
}

// ZRangeRev returns members by reverse rank range [start, stop]:
// highest score first, ties broken by descending member.
func (s *Store) ZRangeRev(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Zrange().Key(key).
		Min(strconv.FormatInt(start, 10)).
		Max(strconv.FormatInt(stop, 10)).
		Rev().Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}
