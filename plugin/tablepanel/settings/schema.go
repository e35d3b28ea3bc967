// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"encoding/json"

	"github.com/gohugoio/hashstructure"
	"github.com/invopop/jsonschema"
)

// Hash fingerprints the settings. Equal settings hash equal.
func Hash(s Settings) (uint64, error) {
	return hashstructure.Hash(s, nil)
}

// Schema generates the JSON schema of a settings document.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&Settings{})
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, err
	}
	schemaJSON = append(schemaJSON, byte('\n'))
	return schemaJSON, nil
}
