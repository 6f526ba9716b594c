package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	ID    string `yaml:"id" json:"id"`
	URL   string `yaml:"url" json:"url"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

func TestFprintYAML(t *testing.T) {
	var buf bytes.Buffer
	in := []sample{{ID: "w1", URL: "http://localhost:10000/?app=gmail&x=1"}}
	if err := Fprint(&buf, FormatYAML, in); err != nil {
		t.Fatal(err)
	}

	var decoded []sample
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != in[0] {
		t.Errorf("decoded = %+v", decoded)
	}
	if strings.Contains(buf.String(), "title") {
		t.Error("empty title should be omitted")
	}
}

func TestFprintJSONKeepsAmpersands(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, FormatJSON, sample{ID: "w1", URL: "a?b=1&c=2"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a?b=1&c=2") {
		t.Errorf("JSON should not escape HTML: %s", buf.String())
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("compact JSON should be one line: %q", buf.String())
	}
	var decoded sample
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if err := Fprint(&bytes.Buffer{}, Format("xml"), 1); err == nil {
		t.Error("unknown format should error")
	}
}
