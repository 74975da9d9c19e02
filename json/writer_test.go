package json_test

import (
	"strings"
	"testing"

	"github.com/midbel/jsonpath/json"
)

func TestWriteCompact(t *testing.T) {
	data := []struct {
		Doc  string
		Want string
	}{
		{Doc: `null`, Want: `null`},
		{Doc: `true`, Want: `true`},
		{Doc: `-1.5`, Want: `-1.5`},
		{Doc: `"with \"quotes\""`, Want: `"with \"quotes\""`},
		{Doc: `[1, 2, 3]`, Want: `[1,2,3]`},
		{Doc: `{"b": 1, "a": 2}`, Want: `{"b":1,"a":2}`},
		{Doc: `{"a": {"b": [true, null]}}`, Want: `{"a":{"b":[true,null]}}`},
	}
	for _, d := range data {
		v, err := json.ParseString(d.Doc)
		if err != nil {
			t.Errorf("%s: fail to parse: %s", d.Doc, err)
			continue
		}
		var str strings.Builder
		ws := json.NewWriter(&str)
		ws.Compact = true
		if err := ws.Write(v); err != nil {
			t.Errorf("%s: fail to write: %s", d.Doc, err)
			continue
		}
		if str.String() != d.Want {
			t.Errorf("%s: want %s, got %s", d.Doc, d.Want, str.String())
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	v, err := json.ParseString(sample)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	var str strings.Builder
	if err := json.NewWriter(&str).Write(v); err != nil {
		t.Fatalf("fail to write document: %s", err)
	}
	back, err := json.ParseString(str.String())
	if err != nil {
		t.Fatalf("fail to parse written document: %s", err)
	}
	if !json.Equal(v, back) {
		t.Errorf("document changed through write and parse: %s", str.String())
	}
}
