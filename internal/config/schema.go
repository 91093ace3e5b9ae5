package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/season"
)

// schemaFile is the YAML layout of SCHEMA_FILE:
//
//	columns:
//	  points: [pts, puntos]
//	seasons:
//	  buckets:
//	    - {name: Summer, months: [12, 1, 2], ordinal: 1}
type schemaFile struct {
	Columns map[string][]string `yaml:"columns" validate:"omitempty,dive,keys,required,endkeys,min=1,dive,required"`
	Seasons *season.Config      `yaml:"seasons"`
}

// Schema is the column synonym table and season calendar in effect.
type Schema struct {
	Columns boxscore.ColumnSchema
	Seasons season.Config
}

func DefaultSchema() Schema {
	return Schema{
		Columns: boxscore.DefaultColumnSchema(),
		Seasons: season.DefaultConfig(),
	}
}

// LoadSchema reads path and overlays it on DefaultSchema. An empty path
// returns the defaults.
func LoadSchema(path string) (Schema, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSchema(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("read SCHEMA_FILE: %w", err)
	}
	return ParseSchema(raw)
}

func ParseSchema(raw []byte) (Schema, error) {
	var file schemaFile
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Schema{}, fmt.Errorf("decode schema: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return Schema{}, fmt.Errorf("validate schema: %w", err)
	}

	known := make(map[boxscore.Field]struct{}, len(boxscore.Fields()))
	for _, field := range boxscore.Fields() {
		known[field] = struct{}{}
	}

	overrides := make(map[boxscore.Field][]string, len(file.Columns))
	for name, synonyms := range file.Columns {
		field := boxscore.Field(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := known[field]; !ok {
			return Schema{}, fmt.Errorf("validate schema: unknown column field %q (valid: %s)", name, strings.Join(fieldNames(), ", "))
		}
		overrides[field] = synonyms
	}

	out := Schema{
		Columns: boxscore.NewColumnSchema(overrides),
		Seasons: season.DefaultConfig(),
	}
	if file.Seasons != nil {
		if err := file.Seasons.Validate(); err != nil {
			return Schema{}, fmt.Errorf("validate schema: %w", err)
		}
		out.Seasons = *file.Seasons
	}
	return out, nil
}

func fieldNames() []string {
	out := make([]string, 0, len(boxscore.Fields()))
	for _, field := range boxscore.Fields() {
		out = append(out, string(field))
	}
	sort.Strings(out)
	return out
}
