package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/adcheck/internal/tensor"
)

// Parse parses text written in YAML flow syntax: a number is a scalar,
// a list of numbers a vector, and a list of lists a matrix given row by row
// (e.g. "0.5", "[1, 2]", "[[1, 2], [3, 4]]").
func Parse(text string) (tensor.Value, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse %q: %w", text, err)
	}
	v, err := fromYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", text, err)
	}
	return v, nil
}

// ParseValue is like Parse but the result must have the shape of proto.
// When proto is an integer the text must be an integer.
func ParseValue(text string, proto tensor.Value) (tensor.Value, error) {
	if _, ok := proto.(tensor.Int); ok {
		var raw any
		if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("parse %q: %w", text, err)
		}
		n, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("parse %q: want an integer", text)
		}
		return tensor.Int(n), nil
	}
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if got, want := tensor.ShapeOf(v), tensor.ShapeOf(proto); !got.Equal(want) {
		return nil, fmt.Errorf("parse %q: shape %v, want %v", text, got, want)
	}
	return v, nil
}

func fromYAML(raw any) (tensor.Value, error) {
	switch x := raw.(type) {
	case int, float64:
		f, _ := number(x)
		return tensor.Float(f), nil
	case []any:
		if len(x) > 0 {
			if _, nested := x[0].([]any); nested {
				return matrixFromYAML(x)
			}
		}
		xs, err := numbers(x)
		if err != nil {
			return nil, err
		}
		return tensor.Vec(xs...), nil
	}
	return nil, fmt.Errorf("unsupported value %v", raw)
}

func matrixFromYAML(rows []any) (tensor.Value, error) {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		row, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d is not a list", i)
		}
		xs, err := numbers(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = xs
	}
	return tensor.FromRows(out)
}

func numbers(xs []any) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		f, ok := number(x)
		if !ok {
			return nil, fmt.Errorf("element %d is not a number: %v", i, x)
		}
		out[i] = f
	}
	return out, nil
}

func number(x any) (float64, bool) {
	switch n := x.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ParseArgs parses one text per argument of e. Missing trailing texts keep
// the defaults. Arguments of an element-wise entry take any shape; all
// others must match the default's shape.
func (e Entry) ParseArgs(texts []string) ([]tensor.Value, error) {
	if len(texts) > len(e.Args) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", e.Name, len(e.Args), len(texts))
	}
	args := append([]tensor.Value(nil), e.Args...)
	for i, text := range texts {
		var v tensor.Value
		var err error
		if e.Elementwise {
			v, err = Parse(text)
		} else {
			v, err = ParseValue(text, e.Args[i])
		}
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}
