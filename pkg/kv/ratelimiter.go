// Package kv provides a starskey-backed rate limiter store for the login
// endpoints, implementing echo's middleware.RateLimiterStore.
package kv

import (
	"encoding/json"
	"time"

	"github.com/starskey-io/starskey"

	"dockhand/pkg/logger"
)

type RateLimitInfo struct {
	Attempts  int       `json:"attempts"`
	ResetTime time.Time `json:"reset_time"`
	Jailed    bool      `json:"jailed"`
}

type RateLimiterStore struct {
	db        *starskey.Starskey
	rate      float64
	burst     int
	expiresIn time.Duration
}

// NewRateLimiterStore opens (or creates) a starskey store at dir.
func NewRateLimiterStore(dir string, rate float64, burst int, expiresIn time.Duration) (*RateLimiterStore, error) {
	db, err := starskey.Open(&starskey.Config{
		Permission:        0755,
		Directory:         dir,
		FlushThreshold:    8 * 1024 * 1024,
		MaxLevel:          3,
		SizeFactor:        10,
		BloomFilter:       true,
		SuRF:              false,
		Logging:           false,
		Compression:       true,
		CompressionOption: starskey.SnappyCompression,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Rate limiter store opened", "dir", dir, "rate", rate, "burst", burst)

	return &RateLimiterStore{
		db:        db,
		rate:      rate,
		burst:     burst,
		expiresIn: expiresIn,
	}, nil
}

// Allow implements echo's RateLimiterStore.
func (s *RateLimiterStore) Allow(identifier string) (bool, error) {
	var allowed bool

	err := s.db.Update(func(txn *starskey.Txn) error {
		now := time.Now()
		key := []byte(identifier)

		info := RateLimitInfo{ResetTime: now}

		value, err := txn.Get(key)
		if err == nil && value != nil {
			if uerr := json.Unmarshal(value, &info); uerr != nil {
				info = RateLimitInfo{ResetTime: now}
			}

			if info.Jailed && now.Before(info.ResetTime) {
				allowed = false
				return nil
			}
			if info.Jailed {
				logger.Info("Identifier released from jail", "id", identifier)
				info.Jailed = false
			}

			// Refill tokens for the elapsed time, or reset entirely once
			// the window expired.
			tokensToAdd := now.Sub(info.ResetTime).Seconds() * s.rate
			if now.After(info.ResetTime.Add(s.expiresIn)) {
				info.Attempts = 0
				info.ResetTime = now
			} else {
				info.Attempts = max(0, info.Attempts-int(tokensToAdd))
			}
		}

		if info.Attempts >= s.burst {
			allowed = false
			return nil
		}

		info.Attempts++
		allowed = true

		if info.Attempts >= s.burst {
			info.Jailed = true
			info.ResetTime = now.Add(time.Second)
			logger.Info("Identifier jailed due to rate limit violation", "id", identifier, "reset_at", info.ResetTime)
		}

		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		txn.Put(key, data)
		return nil
	})

	return allowed, err
}

// Reset clears the rate limit state of an identifier.
func (s *RateLimiterStore) Reset(identifier string) error {
	return s.db.Delete([]byte(identifier))
}

// Close flushes and closes the underlying store.
func (s *RateLimiterStore) Close() error {
	return s.db.Close()
}
