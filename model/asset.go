package model

import (
	"strconv"
	"strings"
)

// Asset is a flexible map representing one piece of browsable content
// (a token image, a map tile, creature art, ...).
// The assetID is the only required field for asset identification.
// Other fields like "display_name", "filename", "tags", etc., are accessed by
// their string keys and depend on how the asset was indexed.
// Example: asset["display_name"], asset["tags"]
type Asset map[string]interface{}

// GetAssetID returns the assetID if it's stored in the asset map under the "assetID" key.
func (a Asset) GetAssetID() (string, bool) {
	if id, ok := a["assetID"]; ok {
		if str, sok := id.(string); sok {
			if str != "" {
				return str, true
			}
		}
	}
	return "", false
}

// GetString returns the first non-empty string value found under the given
// keys. Records coming from different manifest generations use different key
// spellings (e.g. "display_name" vs "displayName", "path" vs "file_path"),
// so lookups accept a fallback chain.
func (a Asset) GetString(keys ...string) string {
	for _, key := range keys {
		if val, ok := a[key]; ok {
			if str, sok := val.(string); sok && str != "" {
				return str
			}
		}
	}
	return ""
}

// DisplayKey returns the string used to label the asset in result lists and
// to break score ties: display_name, then displayName, then filename, then
// name, then empty.
func (a Asset) DisplayKey() string {
	return a.GetString("display_name", "displayName", "filename", "name")
}

// TagsText returns the asset's tags as a single space-joined string. The
// "tags" field may be a plain string, a []string, or a []interface{} of
// strings (the usual shape after JSON decoding).
func (a Asset) TagsText() string {
	val, ok := a["tags"]
	if !ok {
		return ""
	}
	switch tags := val.(type) {
	case string:
		return tags
	case []string:
		return strings.Join(tags, " ")
	case []interface{}:
		parts := make([]string, 0, len(tags))
		for _, item := range tags {
			if str, sok := item.(string); sok {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// FieldText renders the value under key as search text. Missing fields and
// non-renderable values become the empty string; numbers render without a
// trailing ".0" so a grid_width of 2.0 reads "2".
func (a Asset) FieldText(key string) string {
	val, ok := a[key]
	if !ok {
		return ""
	}
	return valueText(val)
}

// RawFieldText is like FieldText but renders missing fields as the literal
// string "undefined". The haystack's synthesized "s{scale}x" and
// "{grid_width}x{grid_height}" fragments rely on this to reproduce the
// browser's historical "sundefinedx" behavior for records without those
// fields.
func (a Asset) RawFieldText(key string) string {
	val, ok := a[key]
	if !ok || val == nil {
		return "undefined"
	}
	return valueText(val)
}

func valueText(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
