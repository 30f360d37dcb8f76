package clients

import (
	"encoding/json"
	"strconv"
	"strings"
)

// normaliza campos dinámicos del CRUD que llegan como number o string

func normalizeToInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case json.Number:
		if parsed, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return parsed, true
		}
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			if parsed, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func normalizeToInt(value interface{}) (int, bool) {
	if v, ok := normalizeToInt64(value); ok {
		return int(v), true
	}
	return 0, false
}
