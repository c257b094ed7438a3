package envops

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestExportYAML(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, "B=two\nA=one\nURL=postgres://u:p@h/db\n")

	var out bytes.Buffer
	if err := Export(ctx, path, "yaml", &out); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	var got map[string]string
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, out.String())
	}
	want := map[string]string{"A": "one", "B": "two", "URL": "postgres://u:p@h/db"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("exported entries = %v, want %v", got, want)
	}
}

func TestExportTOML(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, "B=two\nA=one\n")

	var out bytes.Buffer
	if err := Export(ctx, path, "TOML", &out); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	var got map[string]string
	if err := toml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid toml: %v\n%s", err, out.String())
	}
	want := map[string]string{"A": "one", "B": "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("exported entries = %v, want %v", got, want)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, "A=1\n")

	var out bytes.Buffer
	if err := Export(ctx, path, "json", &out); err == nil {
		t.Error("Export with unknown format should fail")
	}
	if out.Len() != 0 {
		t.Errorf("Export wrote %q before failing", out.String())
	}
}
