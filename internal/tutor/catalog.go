package tutor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/ai"
)

type ProviderConfig struct {
	Identifier       string         `yaml:"identifier" validate:"required"`
	Kind             ai.Kind        `yaml:"kind" validate:"required,oneof=inference chat"`
	EndpointTemplate string         `yaml:"endpoint" validate:"required"`
	Direction        Direction      `yaml:"direction,omitempty" validate:"omitempty,oneof=en-jp jp-en"`
	Parameters       map[string]any `yaml:"parameters,omitempty"`
}

// Endpoint expands {model} in the template.
func (p ProviderConfig) Endpoint() string {
	return strings.ReplaceAll(p.EndpointTemplate, "{model}", p.Identifier)
}

func (p ProviderConfig) clone() ProviderConfig {
	out := p
	if p.Parameters != nil {
		out.Parameters = make(map[string]any, len(p.Parameters))
		for k, v := range p.Parameters {
			out.Parameters[k] = v
		}
	}
	return out
}

// Catalog is the ordered provider list per category. It is read-only after construction.
type Catalog struct {
	byCategory map[Category][]ProviderConfig
	general    ProviderConfig
}

var validate = validator.New()

// NewCatalog validates and copies the given entries. Every known category needs at least one
// provider; general is what unknown categories get.
func NewCatalog(entries map[Category][]ProviderConfig, general ProviderConfig) (*Catalog, error) {
	if err := validate.Struct(general); err != nil {
		return nil, fmt.Errorf("general provider: %w", err)
	}
	c := &Catalog{
		byCategory: make(map[Category][]ProviderConfig, len(entries)),
		general:    general.clone(),
	}
	for _, cat := range Categories() {
		list := entries[cat]
		if len(list) == 0 {
			return nil, fmt.Errorf("catalog: no providers for category %q", cat)
		}
		out := make([]ProviderConfig, 0, len(list))
		for i, p := range list {
			if err := validate.Struct(p); err != nil {
				return nil, fmt.Errorf("catalog: %s[%d]: %w", cat, i, err)
			}
			out = append(out, p.clone())
		}
		c.byCategory[cat] = out
	}
	for cat := range entries {
		if !cat.Valid() {
			return nil, fmt.Errorf("catalog: unknown category %q", cat)
		}
	}
	return c, nil
}

// ProvidersFor returns the providers for a category in preference order. The slice is a copy.
func (c *Catalog) ProvidersFor(cat Category) []ProviderConfig {
	list, ok := c.byCategory[cat]
	if !ok {
		return []ProviderConfig{c.general.clone()}
	}
	out := make([]ProviderConfig, len(list))
	for i, p := range list {
		out[i] = p.clone()
	}
	return out
}

// ProviderAt clamps index into the category's list.
func (c *Catalog) ProviderAt(cat Category, index int) ProviderConfig {
	list := c.ProvidersFor(cat)
	switch {
	case index < 0:
		index = 0
	case index >= len(list):
		index = len(list) - 1
	}
	return list[index]
}

func inferenceParams(maxTokens int, temperature float64) map[string]any {
	return map[string]any{
		"max_new_tokens":   maxTokens,
		"temperature":      temperature,
		"return_full_text": false,
	}
}

// DefaultCatalog is the built-in provider table. Specialised models come before general chat
// models; dedicated translation models come first for translation.
func DefaultCatalog(inferenceBase, chatBase string) *Catalog {
	inference := strings.TrimRight(inferenceBase, "/") + "/{model}"
	chat := strings.TrimRight(chatBase, "/")

	mistral := ProviderConfig{Identifier: "mistralai/Mistral-7B-Instruct-v0.2", Kind: ai.KindInference, EndpointTemplate: inference, Parameters: inferenceParams(400, 0.7)}
	zephyr := ProviderConfig{Identifier: "HuggingFaceH4/zephyr-7b-beta", Kind: ai.KindInference, EndpointTemplate: inference, Parameters: inferenceParams(400, 0.7)}
	qwen := ProviderConfig{Identifier: "Qwen/Qwen2.5-7B-Instruct", Kind: ai.KindInference, EndpointTemplate: inference, Parameters: inferenceParams(400, 0.6)}
	llama := ProviderConfig{Identifier: "meta-llama/Llama-3.1-8B-Instruct", Kind: ai.KindChat, EndpointTemplate: chat, Parameters: map[string]any{"max_tokens": 400, "temperature": 0.7}}

	grammarMistral := mistral
	grammarMistral.Parameters = inferenceParams(300, 0.3)

	entries := map[Category][]ProviderConfig{
		CategoryQA:      {qwen, mistral, zephyr, llama},
		CategoryGrammar: {grammarMistral, qwen, llama},
		CategoryTranslation: {
			{Identifier: "Helsinki-NLP/opus-mt-en-jap", Kind: ai.KindInference, EndpointTemplate: inference, Direction: DirectionEnJp},
			{Identifier: "Helsinki-NLP/opus-mt-ja-en", Kind: ai.KindInference, EndpointTemplate: inference, Direction: DirectionJpEn},
			qwen,
			llama,
		},
		CategorySummarization: {
			{Identifier: "facebook/bart-large-cnn", Kind: ai.KindInference, EndpointTemplate: inference, Parameters: map[string]any{"max_length": 160, "min_length": 30}},
			zephyr,
			llama,
		},
		CategoryGeneral: {zephyr, llama},
	}

	c, err := NewCatalog(entries, zephyr)
	if err != nil {
		panic(err)
	}
	return c
}

type catalogFile struct {
	General   ProviderConfig                `yaml:"general"`
	Providers map[Category][]ProviderConfig `yaml:"providers"`
}

// LoadCatalog reads a YAML catalog. {inference} and {chat} in endpoints expand to the configured
// base URLs.
func LoadCatalog(path, inferenceBase, chatBase string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Providers) == 0 {
		return nil, errors.New("catalog file defines no providers")
	}

	r := strings.NewReplacer(
		"{inference}", strings.TrimRight(inferenceBase, "/"),
		"{chat}", strings.TrimRight(chatBase, "/"),
	)
	f.General.EndpointTemplate = r.Replace(f.General.EndpointTemplate)
	for cat, list := range f.Providers {
		for i := range list {
			list[i].EndpointTemplate = r.Replace(list[i].EndpointTemplate)
		}
		f.Providers[cat] = list
	}
	return NewCatalog(f.Providers, f.General)
}
