// Package backend serves a glossary data file over the HTTP API the
// viewer consumes.
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/msalah0e/glossview/internal/model"
)

// SourceRecord is a citation as stored in the data file.
type SourceRecord struct {
	Title string `json:"title" yaml:"title" validate:"required"`
	URL   string `json:"url" yaml:"url" validate:"omitempty,url"`
}

// TermRecord is a term as stored in the data file and served by
// /api/terms.
type TermRecord struct {
	ID         string         `json:"id" yaml:"id" validate:"required"`
	Title      string         `json:"title" yaml:"title" validate:"required"`
	Definition string         `json:"definition" yaml:"definition"`
	Sources    []SourceRecord `json:"sources" yaml:"sources" validate:"dive"`
	Position   model.Point    `json:"position" yaml:"position"`
}

// EdgeRecord is a relation as stored in the data file.
type EdgeRecord struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source" validate:"required"`
	Target   string `json:"target" yaml:"target" validate:"required"`
	Label    string `json:"label" yaml:"label"`
	Animated bool   `json:"animated" yaml:"animated"`
}

// Dataset is the raw content of a data file.
type Dataset struct {
	Terms []TermRecord `json:"terms" yaml:"terms" validate:"dive"`
	Edges []EdgeRecord `json:"edges" yaml:"edges" validate:"dive"`
}

var validate = validator.New()

// ReadFile decodes and validates a data file. Files ending in .yaml or
// .yml are YAML; everything else is JSON, comments and trailing commas
// allowed.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses data according to ext and validates the result.
func Decode(ext string, data []byte) (*Dataset, error) {
	var ds Dataset
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &ds); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks every term and edge and joins the failures into one
// error naming the offending records.
func (ds *Dataset) Validate() error {
	var errs []error
	for i, t := range ds.Terms {
		if err := validate.Struct(t); err != nil {
			name := t.ID
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			errs = append(errs, fmt.Errorf("term %s: %s", name, formatValidationError(err)))
		}
	}
	for i, e := range ds.Edges {
		if err := validate.Struct(e); err != nil {
			errs = append(errs, fmt.Errorf("edge #%d: %s", i, formatValidationError(err)))
		}
	}
	return errors.Join(errs...)
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
