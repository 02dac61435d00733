package redisearch

import (
	"errors"
	"fmt"
)

// Doc is one hit from an FT.SEARCH reply.
type Doc struct {
	ID     string
	Fields map[string]string
}

// DecodeSearch decodes an FT.SEARCH reply into the total match count and
// the page of documents. Handles both the RESP2 array form
// (count, id, kv-list, id, kv-list, ...) and the RESP3 map form
// (total_results / results / extra_attributes).
func DecodeSearch(raw any) (int64, []Doc, error) {
	switch reply := raw.(type) {
	case map[string]interface{}:
		return decodeSearchMap(reply)
	case map[interface{}]interface{}:
		return decodeSearchMap(stringKeyed(reply))
	case []interface{}:
		return decodeSearchArray(reply)
	default:
		return 0, nil, fmt.Errorf("redisearch: unsupported FT.SEARCH reply type %T", raw)
	}
}

// DecodeAggregate decodes an FT.AGGREGATE reply into result rows.
func DecodeAggregate(raw any) ([]map[string]string, error) {
	switch reply := raw.(type) {
	case map[string]interface{}:
		rows, err := resultRows(reply)
		if err != nil {
			return nil, err
		}
		return rows, nil
	case map[interface{}]interface{}:
		rows, err := resultRows(stringKeyed(reply))
		if err != nil {
			return nil, err
		}
		return rows, nil
	case []interface{}:
		// RESP2: count, row-kv-list, row-kv-list, ...
		if len(reply) == 0 {
			return nil, nil
		}
		rows := make([]map[string]string, 0, len(reply)-1)
		for _, item := range reply[1:] {
			m, err := toStrMap(item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, m)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("redisearch: unsupported FT.AGGREGATE reply type %T", raw)
	}
}

// DecodeInfo flattens an FT.INFO reply (alternating key/value list or map)
// into a string map.
func DecodeInfo(raw any) (map[string]string, error) {
	switch reply := raw.(type) {
	case []interface{}:
		m := make(map[string]string, len(reply)/2)
		for i := 0; i+1 < len(reply); i += 2 {
			m[anyToString(reply[i])] = anyToString(reply[i+1])
		}
		return m, nil
	case map[string]interface{}:
		m := make(map[string]string, len(reply))
		for k, v := range reply {
			m[k] = anyToString(v)
		}
		return m, nil
	case map[interface{}]interface{}:
		return DecodeInfo(stringKeyed(reply))
	default:
		return nil, fmt.Errorf("redisearch: unsupported FT.INFO reply type %T", raw)
	}
}

func decodeSearchMap(top map[string]interface{}) (int64, []Doc, error) {
	var total int64
	if tv, ok := top["total_results"]; ok {
		n, ok := toInt64(tv)
		if !ok {
			return 0, nil, errors.New("redisearch: total_results is not an integer")
		}
		total = n
	}

	resultsRaw, ok := top["results"].([]interface{})
	if !ok {
		return 0, nil, errors.New("redisearch: missing results array")
	}

	docs := make([]Doc, 0, len(resultsRaw))
	for _, r := range resultsRaw {
		var hit map[string]interface{}
		switch h := r.(type) {
		case map[string]interface{}:
			hit = h
		case map[interface{}]interface{}:
			hit = stringKeyed(h)
		default:
			return 0, nil, fmt.Errorf("redisearch: unknown hit type %T", r)
		}

		doc := Doc{ID: anyToString(hit["id"])}
		var payload any
		if ea, ok := hit["extra_attributes"]; ok {
			payload = ea
		} else if vals, ok := hit["values"]; ok {
			payload = vals
		}
		if payload != nil {
			fields, err := toStrMap(payload)
			if err != nil {
				return 0, nil, err
			}
			doc.Fields = fields
		}
		docs = append(docs, doc)
	}
	return total, docs, nil
}

func decodeSearchArray(arr []interface{}) (int64, []Doc, error) {
	if len(arr) == 0 {
		return 0, nil, nil
	}
	total, ok := toInt64(arr[0])
	if !ok {
		return 0, nil, errors.New("redisearch: first reply element is not a count")
	}

	var docs []Doc
	for i := 1; i+1 < len(arr); i += 2 {
		fields, err := toStrMap(arr[i+1])
		if err != nil {
			return 0, nil, err
		}
		docs = append(docs, Doc{ID: anyToString(arr[i]), Fields: fields})
	}
	return total, docs, nil
}

func resultRows(top map[string]interface{}) ([]map[string]string, error) {
	resultsRaw, ok := top["results"].([]interface{})
	if !ok {
		return nil, errors.New("redisearch: missing results array")
	}
	rows := make([]map[string]string, 0, len(resultsRaw))
	for _, r := range resultsRaw {
		var row any = r
		if hit, ok := r.(map[string]interface{}); ok {
			if ea, found := hit["extra_attributes"]; found {
				row = ea
			}
		}
		m, err := toStrMap(row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func toStrMap(v any) (map[string]string, error) {
	switch t := v.(type) {
	case []interface{}: // RESP2 alternating kv list
		m := make(map[string]string, len(t)/2)
		for i := 0; i+1 < len(t); i += 2 {
			m[anyToString(t[i])] = anyToString(t[i+1])
		}
		return m, nil
	case map[interface{}]interface{}:
		m := make(map[string]string, len(t))
		for k, val := range t {
			m[anyToString(k)] = anyToString(val)
		}
		return m, nil
	case map[string]interface{}:
		m := make(map[string]string, len(t))
		for k, val := range t {
			m[k] = anyToString(val)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("redisearch: unsupported kv payload type %T", v)
	}
}

func stringKeyed(in map[interface{}]interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(in))
	for k, v := range in {
		m[anyToString(k)] = v
	}
	return m
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	default:
		return 0, false
	}
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
