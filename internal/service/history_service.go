package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/encore/internal/kv"
)

// MaxRecentPaths bounds the recently played list.
const MaxRecentPaths = 10

// LastPlayed is the lesson the user opened most recently.
type LastPlayed struct {
	Ref      string    `json:"ref"`
	Day      int       `json:"day"`
	PlayedAt time.Time `json:"playedAt"`
}

type historyService struct {
	store kv.Store
	now   Clock
}

func NewHistoryService(store kv.Store, now Clock) HistoryService {
	return &historyService{store: store, now: clockOrSystem(now)}
}

func (s *historyService) MarkPlayed(ctx context.Context, ref string, day int) error {
	if ref == "" {
		return fmt.Errorf("path ref is required")
	}
	err := kv.UpdateValue(ctx, s.store, kv.KeyRecentPaths, func(list []string, _ bool) ([]string, error) {
		list = slices.DeleteFunc(list, func(r string) bool { return r == ref })
		list = append(list, ref)
		if len(list) > MaxRecentPaths {
			list = list[len(list)-MaxRecentPaths:]
		}
		return list, nil
	})
	if err != nil {
		return err
	}
	return kv.Save(ctx, s.store, kv.KeyLastPlayed, LastPlayed{
		Ref:      ref,
		Day:      day,
		PlayedAt: s.now().UTC(),
	})
}

// Recent returns refs newest first.
func (s *historyService) Recent(ctx context.Context) ([]string, error) {
	list, _, err := kv.Load[[]string](ctx, s.store, kv.KeyRecentPaths)
	if err != nil {
		return nil, err
	}
	slices.Reverse(list)
	return list, nil
}

func (s *historyService) LastPlayed(ctx context.Context) (*LastPlayed, bool, error) {
	lp, found, err := kv.Load[LastPlayed](ctx, s.store, kv.KeyLastPlayed)
	if err != nil || !found {
		return nil, found, err
	}
	return &lp, true, nil
}
