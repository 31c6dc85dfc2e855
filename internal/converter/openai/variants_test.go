package openai

import (
	"errors"
	"testing"

	"github.com/zhubert/chatsh/internal/converter"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		model  string
		schema Schema
		known  bool
	}{
		{"gpt-3.5-turbo", SchemaSingle, true},
		{"gpt-4-32k", SchemaArray, true},
		{"gpt-4o-mini", SchemaArray, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			v := Lookup(tt.model)
			if v.Model != tt.model {
				t.Errorf("Model = %q, want %q", v.Model, tt.model)
			}
			if v.Schema != tt.schema {
				t.Errorf("Schema = %v, want %v", v.Schema, tt.schema)
			}
			if Known(tt.model) != tt.known {
				t.Errorf("Known(%q) = %v, want %v", tt.model, !tt.known, tt.known)
			}
		})
	}
}

func TestVariants_Sorted(t *testing.T) {
	vs := Variants()
	if len(vs) != 2 {
		t.Fatalf("Variants() len = %d, want 2", len(vs))
	}
	if vs[0].Model != "gpt-3.5-turbo" || vs[1].Model != "gpt-4-32k" {
		t.Errorf("Variants() = %v", vs)
	}
}

func TestVariant_Parse(t *testing.T) {
	single := Lookup("gpt-3.5-turbo")
	array := Lookup("gpt-4-32k")

	tests := []struct {
		name     string
		variant  Variant
		content  string
		command  string
		numDescs int
		wantErr  error
	}{
		{"single", single, `{"description":"shows disk usage","command":"df -h"}`, "df -h", 1, nil},
		{"single ignores extra fields", single, `{"description":"d","command":"pwd","extra":1}`, "pwd", 1, nil},
		{"single empty command", single, `{"description":"d","command":""}`, "", 0, converter.ErrBlankCommand},
		{"array", array, `{"descriptions":["a","b"],"commands":["make","make test"]}`, "make && make test", 2, nil},
		{"array trims blank commands", array, `{"descriptions":["a"],"commands":["ls"," "]}`, "ls", 1, nil},
		{"array no descriptions", array, `{"descriptions":[],"commands":["ls"]}`, "", 0, converter.ErrNoDescriptions},
		{"fenced", array, "```\n{\"descriptions\":[\"a\"],\"commands\":[\"ls\"]}\n```", "ls", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.variant.parse(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse() error = %v", err)
			}
			if d.Command() != tt.command {
				t.Errorf("Command() = %q, want %q", d.Command(), tt.command)
			}
			if len(d.Descriptions()) != tt.numDescs {
				t.Errorf("Descriptions() = %v, want %d entries", d.Descriptions(), tt.numDescs)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVariant_Prompt(t *testing.T) {
	if Lookup("gpt-3.5-turbo").Prompt() == Lookup("gpt-4-32k").Prompt() {
		t.Error("schemas should use different prompts")
	}
}
