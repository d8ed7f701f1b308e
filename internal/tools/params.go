package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Param describes one tool argument for the schema the agent sees.
type Param struct {
	name        string
	typ         string
	description string
	required    bool
	def         any
}

// Int declares a required integer argument.
func Int(name, description string) Param {
	return Param{name: name, typ: "integer", description: description, required: true}
}

// IntWithDefault declares an optional integer argument with a default.
func IntWithDefault(name, description string, def int) Param {
	return Param{name: name, typ: "integer", description: description, def: def}
}

// String declares a required string argument.
func String(name, description string) Param {
	return Param{name: name, typ: "string", description: description, required: true}
}

// StringWithDefault declares an optional string argument with a default.
func StringWithDefault(name, description, def string) Param {
	return Param{name: name, typ: "string", description: description, def: def}
}

// Input wraps the raw arguments of one call. JSON numbers arrive as float64;
// the accessors normalize them so handlers only deal with Go types.
type Input struct {
	args map[string]any
}

func NewInput(args map[string]any) Input {
	if args == nil {
		args = map[string]any{}
	}
	return Input{args: args}
}

// Int64 returns a required integer argument. Numeric strings are accepted
// because some agent frontends quote every value.
func (in Input) Int64(name string) (int64, error) {
	v, ok := in.args[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s is required", name)
	}
	return toInt64(name, v)
}

// Int64Or returns an optional integer argument, def when absent.
func (in Input) Int64Or(name string, def int64) (int64, error) {
	v, ok := in.args[name]
	if !ok || v == nil {
		return def, nil
	}
	return toInt64(name, v)
}

// IntOr returns an optional int argument, def when absent.
func (in Input) IntOr(name string, def int) (int, error) {
	n, err := in.Int64Or(name, int64(def))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// StringOr returns an optional string argument, def when absent or not a
// string.
func (in Input) StringOr(name, def string) string {
	if v, ok := in.args[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func toInt64(name string, v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("%s must be an integer", name)
}
