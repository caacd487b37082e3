package auth

import (
	"os"
	"strconv"
	"time"

	"github.com/Fyyrerde4xhsj/TapNow/game"
)

var ledger *game.Ledger

// Init wires the shared ledger into this package's handlers. Must be called
// once from main before the router starts serving.
func Init(l *game.Ledger) {
	ledger = l
}

// accessTokenTTL reads ACCESS_TOKEN_TTL_MIN, default 15 minutes.
func accessTokenTTL() time.Duration {
	if s := os.Getenv("ACCESS_TOKEN_TTL_MIN"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return time.Duration(v) * time.Minute
		}
	}
	return 15 * time.Minute
}
