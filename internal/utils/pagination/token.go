package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// EncodeOffsetToken creates an opaque token pointing at offset within the result set
// identified by scope. A token is only valid for the scope it was issued for.
func EncodeOffsetToken(scope string, offset int) string {
	tokenStr := fmt.Sprintf("%s|%d", scope, offset)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken. An empty token is offset 0.
func DecodeOffsetToken(token, scope string) (int, error) {
	if token == "" {
		return 0, nil
	}
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	tokenStr := string(decodedBytes)
	idx := strings.LastIndex(tokenStr, "|")
	if idx < 0 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if tokenStr[:idx] != scope {
		return 0, fmt.Errorf("pagination token does not belong to this query")
	}
	offset, err := strconv.Atoi(tokenStr[idx+1:])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// ClampLimit applies the default and the upper bound to a requested page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Page returns items[offset:offset+limit] and the token for the following page,
// or nil when this is the last page.
func Page[T any](items []T, scope string, offset, limit int) ([]T, *string) {
	if offset >= len(items) {
		return []T{}, nil
	}
	end := offset + limit
	if end >= len(items) {
		return items[offset:], nil
	}
	next := EncodeOffsetToken(scope, end)
	return items[offset:end], &next
}
