// Package model reads dbt-style model documents and prints their columns.
package model

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/catalogdocs/errors"
	"gopkg.in/yaml.v3"
)

// File is a model document.
type File struct {
	Version int     `yaml:"version"`
	Models  []Model `yaml:"models"`
}

// Model is one entry of the models list.
type Model struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Columns     []Column `yaml:"columns"`
}

// Column is one column of a model.
type Column struct {
	Name        string `yaml:"name"`
	DataType    string `yaml:"data_type"`
	Description string `yaml:"description"`
}

// Parse decodes a model document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Print writes each model name followed by its columns, one per line, in
// declaration order.
func Print(w io.Writer, f *File) error {
	for _, m := range f.Models {
		if _, err := fmt.Fprintln(w, m.Name); err != nil {
			return err
		}
		for _, c := range m.Columns {
			line := c.Name
			if c.DataType != "" {
				line += " " + c.DataType
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Inspect reads the model document at path and prints it to w.
func Inspect(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ModelRead(path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return errors.ModelInvalid(path, err)
	}

	return Print(w, f)
}
