package redisearch

import (
	"reflect"
	"testing"
)

func TestDecodeSearchArrayReply(t *testing.T) {
	raw := []interface{}{
		int64(42),
		"movie:1", []interface{}{"title", "Alien", "year", "1979"},
		"movie:2", []interface{}{"title", "Aliens", "year", "1986"},
	}

	total, docs, err := DecodeSearch(raw)
	if err != nil {
		t.Fatalf("DecodeSearch() error = %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	want := []Doc{
		{ID: "movie:1", Fields: map[string]string{"title": "Alien", "year": "1979"}},
		{ID: "movie:2", Fields: map[string]string{"title": "Aliens", "year": "1986"}},
	}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("docs = %+v, want %+v", docs, want)
	}
}

func TestDecodeSearchMapReply(t *testing.T) {
	raw := map[interface{}]interface{}{
		"total_results": int64(2),
		"results": []interface{}{
			map[string]interface{}{
				"id": "movie:1",
				"extra_attributes": map[string]interface{}{
					"title": "Alien",
				},
			},
			map[string]interface{}{
				"id": "movie:2",
				"extra_attributes": map[interface{}]interface{}{
					"title": "Aliens",
				},
			},
		},
	}

	total, docs, err := DecodeSearch(raw)
	if err != nil {
		t.Fatalf("DecodeSearch() error = %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(docs) != 2 || docs[0].ID != "movie:1" || docs[1].Fields["title"] != "Aliens" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestDecodeSearchEmpty(t *testing.T) {
	total, docs, err := DecodeSearch([]interface{}{int64(0)})
	if err != nil {
		t.Fatalf("DecodeSearch() error = %v", err)
	}
	if total != 0 || len(docs) != 0 {
		t.Errorf("got total %d, %d docs, want 0/0", total, len(docs))
	}
}

func TestDecodeSearchBadReply(t *testing.T) {
	if _, _, err := DecodeSearch("nope"); err == nil {
		t.Error("DecodeSearch(string) should fail")
	}
	if _, _, err := DecodeSearch([]interface{}{"not-a-count", "id"}); err == nil {
		t.Error("DecodeSearch with non-integer count should fail")
	}
}

func TestDecodeAggregateArrayReply(t *testing.T) {
	raw := []interface{}{
		int64(3),
		[]interface{}{"genre", "Drama", "count", "12"},
		[]interface{}{"genre", "Sci-Fi", "count", "7"},
	}

	rows, err := DecodeAggregate(raw)
	if err != nil {
		t.Fatalf("DecodeAggregate() error = %v", err)
	}
	want := []map[string]string{
		{"genre": "Drama", "count": "12"},
		{"genre": "Sci-Fi", "count": "7"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestDecodeAggregateMapReply(t *testing.T) {
	raw := map[string]interface{}{
		"total_results": int64(1),
		"results": []interface{}{
			map[string]interface{}{
				"extra_attributes": map[string]interface{}{"genre": "Drama", "count": "12"},
			},
		},
	}

	rows, err := DecodeAggregate(raw)
	if err != nil {
		t.Fatalf("DecodeAggregate() error = %v", err)
	}
	if len(rows) != 1 || rows[0]["genre"] != "Drama" || rows[0]["count"] != "12" {
		t.Errorf("rows = %v", rows)
	}
}

func TestDecodeInfo(t *testing.T) {
	raw := []interface{}{
		"index_name", "movie_library",
		"num_docs", int64(120),
		"inverted_sz_mb", "0.05",
	}

	info, err := DecodeInfo(raw)
	if err != nil {
		t.Fatalf("DecodeInfo() error = %v", err)
	}
	if info["index_name"] != "movie_library" {
		t.Errorf("index_name = %q", info["index_name"])
	}
	if info["num_docs"] != "120" {
		t.Errorf("num_docs = %q", info["num_docs"])
	}
}
