// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakovicdavid/figure-backend/internal/config"
	"github.com/novakovicdavid/figure-backend/pkg/errutil"
)

func TestGenerateSchema(t *testing.T) {
	data, err := config.GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, config.SchemaID, schema["$id"])
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties")
	for _, key := range []string{"database_url", "redis_url", "log", "session", "hashing", "connect", "ops"} {
		assert.Contains(t, props, key)
	}

	session := props["session"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "string", session["ttl"].(map[string]any)["type"])
}

func TestValidateYAML(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "empty", doc: ""},
		{name: "full", doc: "log:\n  format: text\n  level: warn\nsession:\n  ttl: 1h\nconnect:\n  attempts: 3\n"},
		{name: "unknown top-level key", doc: "listen: :8080\n", wantErr: "CONFIG_SCHEMA_INVALID"},
		{name: "unknown nested key", doc: "log:\n  colour: true\n", wantErr: "CONFIG_SCHEMA_INVALID"},
		{name: "format outside enum", doc: "log:\n  format: xml\n", wantErr: "CONFIG_SCHEMA_INVALID"},
		{name: "ttl as number", doc: "session:\n  ttl: 3600\n", wantErr: "CONFIG_SCHEMA_INVALID"},
		{name: "zero attempts", doc: "connect:\n  attempts: 0\n", wantErr: "CONFIG_SCHEMA_INVALID"},
		{name: "not yaml", doc: "{", wantErr: "CONFIG_PARSE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.ValidateYAML([]byte(tt.doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			errutil.AssertErrorCode(t, err, tt.wantErr)
		})
	}
}
