package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/store"
	"go.uber.org/zap"
)

// Record keys in the key-value store.
const (
	KeyMatches   = "matches"
	KeyOpponents = "opponents"
)

// DefaultSeedOpponents is the registry used when no opponents record exists yet.
var DefaultSeedOpponents = []string{"Pele"}

// loadMatches reads the matches record. A missing or unreadable record yields an empty
// collection; entries without an opponent or with an unknown color or result are dropped.
func loadMatches(ctx context.Context, s store.Store, logger *zap.Logger) ([]domain.Match, error) {
	raw, err := s.Get(ctx, KeyMatches)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyMatches, err)
	}
	if len(raw) == 0 {
		return []domain.Match{}, nil
	}
	var decoded []domain.Match
	if err := json.Unmarshal(raw, &decoded); err != nil {
		logger.Warn("store_load_fallback", zap.String("key", KeyMatches), zap.Error(err))
		return []domain.Match{}, nil
	}
	out := make([]domain.Match, 0, len(decoded))
	seen := make(map[string]struct{}, len(decoded))
	for _, m := range decoded {
		if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.OpponentName) == "" || !m.UserColor.Valid() || !m.Result.Valid() {
			logger.Warn("store_drop_match", zap.String("id", m.ID), zap.String("color", string(m.UserColor)), zap.String("result", string(m.Result)))
			continue
		}
		if _, dup := seen[m.ID]; dup {
			logger.Warn("store_drop_match", zap.String("id", m.ID), zap.String("reason", "duplicate id"))
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// loadOpponents reads the registry, falling back to seed when the record is absent or corrupt.
// seeded reports that the fallback was used.
func loadOpponents(ctx context.Context, s store.Store, seed []string, logger *zap.Logger) (names []string, seeded bool, err error) {
	raw, err := s.Get(ctx, KeyOpponents)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", KeyOpponents, err)
	}
	if len(raw) == 0 {
		return normalizeNames(seed), true, nil
	}
	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		logger.Warn("store_load_fallback", zap.String("key", KeyOpponents), zap.Error(err))
		return normalizeNames(seed), true, nil
	}
	return normalizeNames(decoded), false, nil
}

// normalizeNames trims, drops blanks and keeps the first occurrence of each name.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func saveJSON(ctx context.Context, s store.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
