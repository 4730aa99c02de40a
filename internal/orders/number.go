package orders

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// NewOrderNumber builds a human-displayable order number:
// PREFIX-<13-digit epoch ms>-<6-digit zero-padded random>. The random suffix
// is probabilistic, not guaranteed unique; the store's unique index plus the
// service's retry loop close that gap.
func NewOrderNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%013d-%06d", prefix, now.UnixMilli(), randomSuffix())
}

func randomSuffix() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to
		// the clock so order creation keeps working.
		return uint32(time.Now().UnixNano()) % 1000000
	}
	return binary.BigEndian.Uint32(buf[:]) % 1000000
}
