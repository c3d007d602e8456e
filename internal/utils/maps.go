package utils

import (
  "fmt"
  "gorm.io/datatypes"
)

// StringMap flattens a stored JSON map into string values. Non-string JSON
// values are formatted; nil values drop out.
func StringMap(m datatypes.JSONMap) map[string]string {
  out := make(map[string]string, len(m))
  for k, v := range m {
    if v == nil {
      continue
    }
    if s, ok := v.(string); ok {
      out[k] = s
      continue
    }
    out[k] = fmt.Sprint(v)
  }
  return out
}

// JSONMap lifts a string map into the storable JSON map type.
func JSONMap(m map[string]string) datatypes.JSONMap {
  out := make(datatypes.JSONMap, len(m))
  for k, v := range m {
    out[k] = v
  }
  return out
}
