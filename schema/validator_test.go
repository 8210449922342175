package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		doc     map[string]interface{}
		wantErr string
	}{
		{
			name: "empty document",
			doc:  map[string]interface{}{},
		},
		{
			name: "full document with extension",
			doc: map[string]interface{}{
				"dataset":    "sm_transformed_v2",
				"navigation": map[string]interface{}{"manifest": "docs.json", "group": "Tables"},
				"lint": map[string]interface{}{
					"column_sources": []interface{}{
						map[string]interface{}{"dataset": "sm_metadata", "dir": "tables/meta"},
					},
				},
				"logging": map[string]interface{}{"level": "debug"},
				"custom":  map[string]interface{}{"anything": true},
			},
		},
		{
			name:    "wrong type",
			doc:     map[string]interface{}{"dataset": 3},
			wantErr: "/dataset",
		},
		{
			name:    "unknown section key",
			doc:     map[string]interface{}{"pages": map[string]interface{}{"folder": "x"}},
			wantErr: "/pages",
		},
		{
			name: "column source without dir",
			doc: map[string]interface{}{
				"lint": map[string]interface{}{
					"column_sources": []interface{}{map[string]interface{}{"dataset": "x"}},
				},
			},
			wantErr: "/lint/column_sources/0",
		},
		{
			name:    "bad log level",
			doc:     map[string]interface{}{"logging": map[string]interface{}{"level": "loud"}},
			wantErr: "/logging/level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
