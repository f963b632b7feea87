package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/podiumlabs/podium/cache"
	"github.com/podiumlabs/podium/logger"
)

// RedisPriceSource reads best-effort USD prices an external feed writes
// to Redis under price:<SYMBOL>. A miss, a stale connection or an
// unparseable value all surface as "unknown" — prize valuation excludes
// unknown prices instead of defaulting them to zero.
type RedisPriceSource struct {
	client *cache.RedisClient
	logger *logger.Logger
}

func NewRedisPriceSource(client *cache.RedisClient, logger *logger.Logger) *RedisPriceSource {
	return &RedisPriceSource{
		client: client,
		logger: logger,
	}
}

func priceKey(symbol string) string {
	return fmt.Sprintf("price:%s", symbol)
}

func (s *RedisPriceSource) Price(symbol string) (decimal.Decimal, bool) {
	if s.client == nil || symbol == "" {
		return decimal.Zero, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.client.GetClient().Get(ctx, priceKey(symbol)).Result()
	if err != nil {
		if err != redis.Nil && s.logger != nil {
			s.logger.Debug("price lookup failed", "symbol", symbol, "error", err)
		}
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("price feed wrote a non-numeric value", "symbol", symbol, "value", raw)
		}
		return decimal.Zero, false
	}

	return price, true
}

// StaticPrices is a fixed symbol->price table for tests and local runs
// without a price feed.
type StaticPrices map[string]decimal.Decimal

func (s StaticPrices) Price(symbol string) (decimal.Decimal, bool) {
	price, ok := s[symbol]
	return price, ok
}
