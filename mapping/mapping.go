// Package mapping reads a TOML table that binds MIDI note/channel
// combinations to a set of avatar OSC-parameter assignments.
package mapping

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/kb10uy/phorcys"
)

// Table is a parsed parameters-mapping file: an avatar ID used for
// validation against a phorcys/config.Configuration, plus the note/channel
// entries that trigger parameter assignments.
type Table struct {
	AvatarID string
	Entries  []Entry

	index map[lookupKey]int
}

// Entry is one MIDI trigger: a note (optionally restricted to a single
// channel) and the parameter values it assigns when struck.
type Entry struct {
	Name       string
	Note       uint8
	Channel    *uint8
	Parameters []ScalarAssignment
}

// ScalarAssignment names one avatar parameter and the value to send it.
type ScalarAssignment struct {
	ParameterName string
	Value         ScalarValue
}

// scalarKind discriminates the arm of ScalarValue that is populated.
type scalarKind int

const (
	scalarInt scalarKind = iota
	scalarFloat
	scalarBool
)

// ScalarValue is a closed union over the TOML scalar types this mapping
// format accepts for a parameter assignment: integer, float, or boolean.
type ScalarValue struct {
	kind scalarKind
	i    int64
	f    float64
	b    bool
}

// Int64 returns v's integer payload, if v holds one.
func (v ScalarValue) Int64() (int64, bool) { return v.i, v.kind == scalarInt }

// Float64 returns v's float payload, if v holds one.
func (v ScalarValue) Float64() (float64, bool) { return v.f, v.kind == scalarFloat }

// Bool returns v's boolean payload, if v holds one.
func (v ScalarValue) Bool() (bool, bool) { return v.b, v.kind == scalarBool }

// ToOSC converts v into the phorcys.Value that carries it over the wire:
// Integer becomes Int32, Float becomes Float32, Boolean becomes Boolean.
func (v ScalarValue) ToOSC() phorcys.Value {
	switch v.kind {
	case scalarInt:
		return phorcys.NewInt32(int32(v.i))
	case scalarFloat:
		return phorcys.NewFloat32(float32(v.f))
	case scalarBool:
		return phorcys.NewBoolean(v.b)
	default:
		return phorcys.NewNil()
	}
}

// lookupKey indexes entries by (channel, note); hasChannel distinguishes
// an any-channel entry from one restricted to channel 0.
type lookupKey struct {
	hasChannel bool
	channel    uint8
	note       uint8
}

type rawTable struct {
	AvatarID string     `toml:"avatar_id"`
	Entries  []rawEntry `toml:"entries"`
}

type rawEntry struct {
	Name       string                 `toml:"name"`
	Note       uint8                  `toml:"midi_note"`
	Channel    *uint8                 `toml:"midi_channel"`
	Parameters map[string]interface{} `toml:"parameters"`
}

// Parse decodes a Table from its TOML document representation.
func Parse(data []byte) (Table, error) {
	var raw rawTable
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Table{}, fmt.Errorf("mapping: parse: %w", err)
	}

	entries := make([]Entry, 0, len(raw.Entries))
	for _, re := range raw.Entries {
		params, err := convertParameters(re.Parameters)
		if err != nil {
			return Table{}, fmt.Errorf("mapping: entry %q: %w", re.Name, err)
		}
		entries = append(entries, Entry{
			Name:       re.Name,
			Note:       re.Note,
			Channel:    re.Channel,
			Parameters: params,
		})
	}

	t := Table{AvatarID: raw.AvatarID, Entries: entries}
	t.buildIndex()
	return t, nil
}

func convertParameters(raw map[string]interface{}) ([]ScalarAssignment, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]ScalarAssignment, 0, len(names))
	for _, name := range names {
		value, err := convertScalar(raw[name])
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		assignments = append(assignments, ScalarAssignment{ParameterName: name, Value: value})
	}
	return assignments, nil
}

func convertScalar(raw interface{}) (ScalarValue, error) {
	switch v := raw.(type) {
	case int64:
		return ScalarValue{kind: scalarInt, i: v}, nil
	case float64:
		return ScalarValue{kind: scalarFloat, f: v}, nil
	case bool:
		return ScalarValue{kind: scalarBool, b: v}, nil
	default:
		return ScalarValue{}, fmt.Errorf("unsupported TOML value type %T", raw)
	}
}

func (t *Table) buildIndex() {
	t.index = make(map[lookupKey]int, len(t.Entries))
	for i, e := range t.Entries {
		if e.Channel == nil {
			t.index[lookupKey{hasChannel: false, note: e.Note}] = i
		} else {
			t.index[lookupKey{hasChannel: true, channel: *e.Channel, note: e.Note}] = i
		}
	}
}

// Lookup finds the entry triggered by a MIDI note on the given channel.
// An entry with no channel restriction matches any incoming channel and
// is tried first; a channel-specific entry is tried second.
func (t Table) Lookup(channel *uint8, note uint8) (*Entry, bool) {
	if i, ok := t.index[lookupKey{hasChannel: false, note: note}]; ok {
		return &t.Entries[i], true
	}
	if channel != nil {
		if i, ok := t.index[lookupKey{hasChannel: true, channel: *channel, note: note}]; ok {
			return &t.Entries[i], true
		}
	}
	return nil, false
}
