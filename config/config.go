// Package config describes the JSON document that maps avatar parameter
// names onto OSC addresses and data types.
package config

import (
	"encoding/json"
	"fmt"
)

// Configuration is the whole configuration of an avatar: its identity plus
// the parameters it exposes over OSC.
type Configuration struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter describes one avatar parameter. Input is absent for
// output-only parameters (e.g. values VRChat only ever sends outward,
// never accepts as input).
type Parameter struct {
	Name   string            `json:"name"`
	Input  *ParameterAddress `json:"input,omitempty"`
	Output ParameterAddress  `json:"output"`
}

// ParameterAddress pairs an OSC address with the wire type carried there.
type ParameterAddress struct {
	Address string            `json:"address"`
	Type    ParameterDataType `json:"type"`
}

// ParameterDataType is the closed set of data types an avatar parameter
// may carry.
type ParameterDataType int

const (
	Bool ParameterDataType = iota
	Int
	Float
)

func (t ParameterDataType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	default:
		return fmt.Sprintf("ParameterDataType(%d)", int(t))
	}
}

// MarshalJSON renders the data type as one of the three recognized names.
func (t ParameterDataType) MarshalJSON() ([]byte, error) {
	switch t {
	case Bool, Int, Float:
		return json.Marshal(t.String())
	default:
		return nil, fmt.Errorf("config: unknown parameter data type %d", int(t))
	}
}

// UnmarshalJSON accepts exactly "Bool", "Int", or "Float"; any other value
// is rejected rather than silently coerced.
func (t *ParameterDataType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Bool":
		*t = Bool
	case "Int":
		*t = Int
	case "Float":
		*t = Float
	default:
		return fmt.Errorf("config: unknown parameter data type %q", s)
	}
	return nil
}

// Parse decodes a Configuration from its JSON document representation.
func Parse(data []byte) (Configuration, error) {
	var c Configuration
	if err := json.Unmarshal(data, &c); err != nil {
		return Configuration{}, fmt.Errorf("config: parse: %w", err)
	}
	return c, nil
}

// Encode renders c back to its JSON document representation.
func (c Configuration) Encode() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}
