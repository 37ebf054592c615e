package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
)

// ======================================================
// Cache do overview de agenda (cache-aside)
// ======================================================
// O overview é recalculável a qualquer momento, então o cache é
// best-effort: TTL curto, invalidação a cada escrita de lifecycle
// e falha de Redis nunca derruba a requisição.

const overviewTTL = 60 * time.Second

type OverviewCache struct {
	rdb *redis.Client
}

// NewOverviewCache devolve nil quando addr está vazio; todos os
// métodos aceitam receiver nil (cache desligado).
func NewOverviewCache(addr, password string, db int) *OverviewCache {
	if addr == "" {
		return nil
	}

	return &OverviewCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func overviewKey(personID uint) string {
	return fmt.Sprintf("schedule:overview:%d", personID)
}

func (c *OverviewCache) Get(ctx context.Context, personID uint) (*schedule.Overview, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, overviewKey(personID)).Bytes()
	if err != nil {
		return nil, false
	}

	var ov schedule.Overview
	if err := json.Unmarshal(raw, &ov); err != nil {
		return nil, false
	}
	return &ov, true
}

func (c *OverviewCache) Set(ctx context.Context, personID uint, ov schedule.Overview) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(ov)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, overviewKey(personID), raw, overviewTTL).Err(); err != nil {
		log.Println("overview cache set error:", err)
	}
}

func (c *OverviewCache) Invalidate(ctx context.Context, personIDs ...uint) {
	if c == nil || c.rdb == nil || len(personIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(personIDs))
	for _, id := range personIDs {
		keys = append(keys, overviewKey(id))
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("overview cache invalidate error:", err)
	}
}
