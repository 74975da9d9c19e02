package json_test

import (
	"testing"

	"github.com/midbel/jsonpath/json"
)

const sample = `{
	"name": "colors",
	"count": 3,
	"ratio": -0.5,
	"enabled": true,
	"extra": null,
	"items": ["red", "green", "blue"],
	"nested": {"deep": {"answer": 42}}
}`

func TestParseDocument(t *testing.T) {
	v, err := json.ParseString(sample)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	obj, ok := v.(*json.Object)
	if !ok {
		t.Fatalf("top level value should be an object, got %s", v.Kind())
	}
	keys := []string{"name", "count", "ratio", "enabled", "extra", "items", "nested"}
	if len(obj.Keys()) != len(keys) {
		t.Fatalf("want %d keys, got %d", len(keys), len(obj.Keys()))
	}
	for i, k := range obj.Keys() {
		if k != keys[i] {
			t.Errorf("key %d: want %s, got %s", i, keys[i], k)
		}
	}
	if v, _ := obj.Get("name"); v != json.Str("colors") {
		t.Errorf("name: unexpected value %v", v)
	}
	if v, _ := obj.Get("count"); v != json.Number(3) {
		t.Errorf("count: unexpected value %v", v)
	}
	if v, _ := obj.Get("ratio"); v != json.Number(-0.5) {
		t.Errorf("ratio: unexpected value %v", v)
	}
	if v, _ := obj.Get("enabled"); v != json.Bool(true) {
		t.Errorf("enabled: unexpected value %v", v)
	}
	if v, _ := obj.Get("extra"); v.Kind() != json.KindNull {
		t.Errorf("extra: unexpected value %v", v)
	}
	arr, _ := obj.Get("items")
	if arr, ok := arr.(*json.Array); !ok || arr.Len() != 3 {
		t.Errorf("items: want an array of 3 elements, got %v", arr)
	}
}

func TestParseEscapes(t *testing.T) {
	data := []struct {
		Doc  string
		Want string
	}{
		{Doc: `"tab\there"`, Want: "tab\there"},
		{Doc: `"line\nbreak"`, Want: "line\nbreak"},
		{Doc: `"quote \" inside"`, Want: `quote " inside`},
		{Doc: `"back\\slash"`, Want: `back\slash`},
		{Doc: `"Aé"`, Want: "Aé"},
		{Doc: `"sol\/idus"`, Want: "sol/idus"},
	}
	for _, d := range data {
		v, err := json.ParseString(d.Doc)
		if err != nil {
			t.Errorf("%s: fail to parse: %s", d.Doc, err)
			continue
		}
		if v != json.Str(d.Want) {
			t.Errorf("%s: want %q, got %v", d.Doc, d.Want, v)
		}
	}
}

func TestParseInvalidDocument(t *testing.T) {
	data := []struct {
		Doc   string
		Cause string
	}{
		{Doc: ``, Cause: "empty document"},
		{Doc: `{`, Cause: "unterminated object"},
		{Doc: `{"a": 1,}`, Cause: "trailing comma in object"},
		{Doc: `[1, 2,]`, Cause: "trailing comma in array"},
		{Doc: `{"a" 1}`, Cause: "missing colon"},
		{Doc: `{1: 2}`, Cause: "non string key"},
		{Doc: `"unterminated`, Cause: "unterminated string"},
		{Doc: `[1] [2]`, Cause: "content after top level value"},
		{Doc: `nil`, Cause: "unknown keyword"},
		{Doc: `1.e5`, Cause: "digit missing after dot"},
	}
	for _, d := range data {
		_, err := json.ParseString(d.Doc)
		if err == nil {
			t.Errorf("%s: invalid document parsed properly!", d.Cause)
		}
	}
}

func TestEqual(t *testing.T) {
	data := []struct {
		Left  string
		Right string
		Want  bool
	}{
		{Left: `{"a": 1, "b": 2}`, Right: `{"b": 2, "a": 1}`, Want: true},
		{Left: `{"a": 1}`, Right: `{"a": 2}`, Want: false},
		{Left: `[1, 2, 3]`, Right: `[1, 2, 3]`, Want: true},
		{Left: `[1, 2, 3]`, Right: `[3, 2, 1]`, Want: false},
		{Left: `{"a": [1, {"b": null}]}`, Right: `{"a": [1, {"b": null}]}`, Want: true},
		{Left: `"1"`, Right: `1`, Want: false},
		{Left: `null`, Right: `null`, Want: true},
	}
	for _, d := range data {
		left, err := json.ParseString(d.Left)
		if err != nil {
			t.Errorf("%s: fail to parse: %s", d.Left, err)
			continue
		}
		right, err := json.ParseString(d.Right)
		if err != nil {
			t.Errorf("%s: fail to parse: %s", d.Right, err)
			continue
		}
		if got := json.Equal(left, right); got != d.Want {
			t.Errorf("Equal(%s, %s): want %t, got %t", d.Left, d.Right, d.Want, got)
		}
	}
}
