package devutil

import (
	"encoding/json"
	"strings"
)

// pick round-trips v through JSON and keeps only the requested keys.
// Used for compact debug output of blocks and requests.
func pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

func Pick(v any, keys ...string) map[string]any {
	return pick(v, keys...)
}

// PickEach applies Pick to every item.
func PickEach[T any](items []T, keys ...string) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = pick(it, keys...)
	}
	return out
}

// ParseKeys splits a "course,date" style list, dropping blanks.
func ParseKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
