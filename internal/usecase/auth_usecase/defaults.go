package auth

import (
	"time"

	"github.com/google/uuid"
)

// UTCの現在時刻
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// uuid v4（crypto/rand）
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
