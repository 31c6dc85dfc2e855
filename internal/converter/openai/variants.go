package openai

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/zhubert/chatsh/internal/converter"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-3.5-turbo"

// commandJoiner chains the commands of the array schema into one line.
const commandJoiner = " && "

const singlePrompt = `Now, you are an assistant to help users to convert their text to shell commands (NOTE: The command may consist of multiple commands.).
Your answer MUST be a json string (including other descriptions is DISALLOWED) and MUST contain the following fields:
1. description: What is each part of this command doing? It should be as short as possible.
2. command: The command(s) meet the requirements.`

const arrayPrompt = `Now, you are an assistant to help users to convert their text to shell commands (NOTE: The command may consist of multiple commands.).
Your answer MUST be a json string (including other fields are DISALLOWED) and MUST ONLY contain the following two fields:
1. descriptions: The array of string, each element interpreting a part of the command you generated. (For example, if you give the command ["cd a", "ls -lh"], the descriptions could be ["` + "`cd a`" + `: navigate to a directory", "` + "`ls -lh`" + `: display the information about each item and its size"]. NOTE: The description ALWAYS starts with the command you generated, and the command is wrapped by backticks.)
2. commands: The array of command(s) meet the requirements.`

// Schema is the shape of the JSON document a model is asked to produce.
type Schema int

const (
	// SchemaSingle is {"description": string, "command": string}.
	SchemaSingle Schema = iota
	// SchemaArray is {"descriptions": []string, "commands": []string}.
	SchemaArray
)

func (s Schema) String() string {
	switch s {
	case SchemaSingle:
		return "description+command"
	case SchemaArray:
		return "descriptions[]+commands[]"
	default:
		return "unknown"
	}
}

// Variant describes one backend flavour: the model it targets, the system
// prompt it sends and the schema it expects back.
type Variant struct {
	Model  string
	Schema Schema
}

// Prompt returns the system instruction for the variant's schema.
func (v Variant) Prompt() string {
	if v.Schema == SchemaSingle {
		return singlePrompt
	}
	return arrayPrompt
}

// registry maps known model ids to their variants.
var registry = map[string]Variant{
	"gpt-3.5-turbo": {Model: "gpt-3.5-turbo", Schema: SchemaSingle},
	"gpt-4-32k":     {Model: "gpt-4-32k", Schema: SchemaArray},
}

// Lookup returns the variant for model. Unknown models get the array
// schema, which newer models follow reliably.
func Lookup(model string) Variant {
	if v, ok := registry[model]; ok {
		return v
	}
	return Variant{Model: model, Schema: SchemaArray}
}

// Known reports whether model has a registered variant.
func Known(model string) bool {
	_, ok := registry[model]
	return ok
}

// Variants returns the registered variants sorted by model id.
func Variants() []Variant {
	out := make([]Variant, 0, len(registry))
	for _, v := range registry {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b Variant) int {
		return strings.Compare(a.Model, b.Model)
	})
	return out
}

type singleReply struct {
	Description string `json:"description"`
	Command     string `json:"command"`
}

type arrayReply struct {
	Descriptions []string `json:"descriptions"`
	Commands     []string `json:"commands"`
}

// parse decodes the candidate content according to the variant's schema.
func (v Variant) parse(content string) (converter.Detail, error) {
	raw := []byte(stripCodeFence(content))

	switch v.Schema {
	case SchemaSingle:
		var r singleReply
		if err := json.Unmarshal(raw, &r); err != nil {
			return converter.Detail{}, err
		}
		return converter.NewDetail([]string{r.Description}, r.Command)
	case SchemaArray:
		var r arrayReply
		if err := json.Unmarshal(raw, &r); err != nil {
			return converter.Detail{}, err
		}
		commands := make([]string, 0, len(r.Commands))
		for _, c := range r.Commands {
			if c = strings.TrimSpace(c); c != "" {
				commands = append(commands, c)
			}
		}
		return converter.NewDetail(r.Descriptions, strings.Join(commands, commandJoiner))
	default:
		return converter.Detail{}, fmt.Errorf("unsupported schema %d", v.Schema)
	}
}

// stripCodeFence removes a surrounding markdown code fence, which models
// sometimes add despite being told to answer with bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
