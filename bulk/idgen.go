package bulk

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	mathrand "math/rand/v2"
)

// generateUUID returns a time-ordered UUID (version 7) string.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}

// generateUID returns a compact process-unique id: the last five digits
// of the pid followed by thirteen random hex characters.
func generateUID() string {
	var buf [7]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; keep ids
		// unique with a time-based fallback anyway.
		return fmt.Sprintf("%05d%013x", os.Getpid()%100000, time.Now().UnixNano()&0xfffffffffffff)
	}
	return fmt.Sprintf("%05d%s", os.Getpid()%100000, hex.EncodeToString(buf[:])[:13])
}

// randomID returns a random positive 63-bit integer id.
func randomID() int64 {
	return mathrand.Int64N(math.MaxInt64-1) + 1
}

// stringID returns a prefixed unique string id.
func stringID() string {
	return "id_" + strconv.FormatInt(time.Now().UnixNano(), 16)
}
