package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a decimal platform id. Platform ids travel as strings in
// API payloads and URL parameters.
func ParseID(val string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", val, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", val)
	}
	return id, nil
}

// FormatID renders a platform id the way the API expects it.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// JoinIDs renders ids as a comma separated list.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = FormatID(id)
	}
	return strings.Join(parts, ",")
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var chunks [][]T
	for size < len(items) {
		chunks = append(chunks, items[:size:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

// ToInt converts query style values to int, returning fallback when the
// value is empty or malformed.
func ToInt(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return i
}

// ToBool treats "1" and "true" (any case) as true.
func ToBool(val string) bool {
	return val == "1" || strings.EqualFold(val, "true")
}
