package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	apierrors "github.com/diogo/rpchat/internal/errors"
	"github.com/diogo/rpchat/internal/models"
)

// Relation is someone the character knows
type Relation struct {
	Name        string `json:"name" yaml:"name"`
	Relation    string `json:"relation" yaml:"relation"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	Personality string `json:"personality,omitempty" yaml:"personality,omitempty"`
}

// Character is the persona the assistant plays.
// Defaults for absent fields are filled in by LoadCharacter.
type Character struct {
	Name        string     `json:"name" yaml:"name"`
	Role        string     `json:"role" yaml:"role"`
	Personality string     `json:"personality" yaml:"personality"`
	Background  string     `json:"background" yaml:"background"`
	Style       string     `json:"style" yaml:"style"`
	Quirks      []string   `json:"quirks" yaml:"quirks"`
	Relations   []Relation `json:"relations" yaml:"relations"`
	RandomFacts []string   `json:"randomFacts" yaml:"randomFacts"`
}

// LoadCharacter reads a character file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func LoadCharacter(path string) (*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apierrors.NewCharacterError(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, apierrors.NewCharacterError(path, err)
		}
	}

	c, err := ParseCharacter(data)
	if err != nil {
		return nil, apierrors.NewCharacterError(path, err)
	}
	return c, nil
}

// ParseCharacter decodes a JSON character record. Absent or mistyped fields
// fall back to their defaults instead of failing.
func ParseCharacter(data []byte) (*Character, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("character must be a JSON object")
	}

	c := &Character{
		Name:        stringField(root, "name"),
		Role:        stringField(root, "role"),
		Personality: stringField(root, "personality"),
		Background:  stringField(root, "background"),
		Style:       stringField(root, "style"),
		Quirks:      stringList(root.Get("quirks")),
		RandomFacts: stringList(root.Get("randomFacts")),
		Relations:   []Relation{},
	}
	if c.Name == "" {
		c.Name = models.UnknownName
	}

	rels := root.Get("relations")
	if rels.IsArray() {
		for _, r := range rels.Array() {
			if !r.IsObject() {
				continue
			}
			rel := Relation{
				Name:        stringField(r, "name"),
				Relation:    stringField(r, "relation"),
				Role:        stringField(r, "role"),
				Personality: stringField(r, "personality"),
			}
			if p := r.Get("personality"); !p.Exists() || p.Type == gjson.Null {
				rel.Personality = models.UnknownPersonality
			}
			c.Relations = append(c.Relations, rel)
		}
	}

	return c, nil
}

// stringField returns a scalar field as text; objects and arrays yield "".
func stringField(r gjson.Result, key string) string {
	v := r.Get(key)
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return v.String()
	default:
		return ""
	}
}

func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		switch item.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			out = append(out, item.String())
		}
	}
	return out
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}
