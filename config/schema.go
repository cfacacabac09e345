package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/wippyai/clrhost/errors"
)

// Schema returns the JSON schema of HostConfig as written in YAML files.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}
	s := reflector.Reflect(&HostConfig{})

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "marshal schema")
	}
	return out, nil
}
