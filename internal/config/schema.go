package config

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// configSchemaJSON is the JSON Schema for the configuration document,
// covering the keys spec.md §6 recognises. It is deliberately permissive
// on numeric ranges (the synthesizer clamps at runtime); its job is to
// catch structurally wrong documents (wrong key types, unknown top-level
// shape) at start-up, per spec.md §7 "config load failure is fatal".
const configSchemaJSON = `{
  "type": "object",
  "properties": {
    "scanned_roots":      {"type": "array", "items": {"type": "string"}},
    "entry_points":        {"type": "array", "items": {"type": "string"}},
    "protected_patterns":  {"type": "array", "items": {"type": "string"}},
    "settings": {
      "type": "object",
      "properties": {
        "min_dead_code_loc":    {"type": "integer"},
        "base_loc_limit":       {"type": "integer"},
        "hard_ceiling_loc":     {"type": "integer"},
        "soft_floor_loc":       {"type": "integer"},
        "merge_score_threshold": {"type": "number"},
        "nesting_weight":       {"type": "number"},
        "density_weight":       {"type": "number"},
        "drag_target":          {"type": "number"},
        "state_weight":         {"type": "number"},
        "max_depth_threshold":  {"type": "integer"}
      }
    },
    "templates": {
      "type": "object",
      "properties": {
        "legend":               {"type": "string"},
        "surgical_objective":   {"type": "string"},
        "violation_objective":  {"type": "string"},
        "structural_objective": {"type": "string"},
        "merge_objective":      {"type": "string"},
        "ambiguity_objective":  {"type": "string"}
      }
    },
    "exclusion_rules": {
      "type": "object",
      "properties": {
        "folders":    {"type": "array", "items": {"type": "string"}},
        "files":      {"type": "array", "items": {"type": "string"}},
        "extensions": {"type": "array", "items": {"type": "string"}}
      }
    },
    "profiles": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "complexity_dictionary": {"type": "object"},
          "forbidden_patterns":    {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "taxonomy": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "multiplier": {"type": "number"},
          "desc":       {"type": "string"}
        },
        "required": ["multiplier"]
      }
    },
    "exceptions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "pattern":    {"type": "string"},
          "max_loc":    {"type": "integer"},
          "multiplier": {"type": "number"}
        },
        "required": ["pattern"]
      }
    }
  }
}`

var compiledConfigSchema *jsonschema.Resolved

func init() {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(configSchemaJSON), &schema); err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid JSON Schema: %v", err))
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema failed to resolve: %v", err))
	}
	compiledConfigSchema = resolved
}

// ValidateSchema validates raw configuration bytes against the embedded
// JSON Schema before unmarshalling into Config, so a structurally invalid
// document is rejected with a precise path rather than a generic
// unmarshal error.
func ValidateSchema(data []byte) error {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("config is not valid JSON: %w", err)
	}
	if err := compiledConfigSchema.Validate(instance); err != nil {
		return fmt.Errorf("config failed schema validation: %w", err)
	}
	return nil
}
