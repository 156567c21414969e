package feed

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// Feed pages are keyed by (created_at, id) so posts sharing a timestamp
// still paginate deterministically. The cursor is the base64 of
// "createdAt|id" — opaque to clients, stable across refreshes.

func encodeCursor(createdAt int64, id string) string {
	raw := strconv.FormatInt(createdAt, 10) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (createdAt int64, id string, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, "", errors.New("bad cursor")
	}
	ts, id, ok := strings.Cut(string(raw), "|")
	if !ok {
		return 0, "", errors.New("bad cursor")
	}
	createdAt, err = strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", errors.New("bad cursor")
	}
	return createdAt, id, nil
}
