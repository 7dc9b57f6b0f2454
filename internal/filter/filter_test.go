package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func props(m map[string]any) Props {
	return func(name string) (any, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestMatch(t *testing.T) {
	cell := props(map[string]any{"tile": "floor", "x": 4, "playerDistance": 7})
	tests := []struct {
		name string
		set  Set
		want bool
	}{
		{"empty matches", nil, true},
		{"eq string", Set{{Prop: "tile", Op: Eq, Value: "floor"}}, true},
		{"neq string", Set{{Prop: "tile", Op: Neq, Value: "floor"}}, false},
		{"gt number", Set{{Prop: "playerDistance", Op: Gt, Value: 5}}, true},
		{"lte number", Set{{Prop: "x", Op: Lte, Value: 3}}, false},
		{"float against int", Set{{Prop: "x", Op: Gte, Value: 4.0}}, true},
		{"in list", Set{{Prop: "tile", Op: In, Value: []any{"door", "floor"}}}, true},
		{"not in list", Set{{Prop: "tile", Op: In, Value: []any{"chasm"}}}, false},
		{"missing prop", Set{{Prop: "danger", Op: Eq, Value: 0}}, false},
		{"conjunction", Set{{Prop: "tile", Op: Eq, Value: "floor"}, {Prop: "x", Op: Lt, Value: 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Match(cell))
		})
	}
}

func TestValidate(t *testing.T) {
	s := Set{{Prop: "danger", Op: Lt, Value: 3}}
	err := s.Validate("tile", "x", "y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProp))

	assert.NoError(t, Set{{Prop: "tile", Op: Eq, Value: "floor"}}.Validate("tile"))
	assert.Error(t, Set{{Prop: "tile", Op: "like", Value: "f"}}.Validate("tile"))
}

func TestFromYAML(t *testing.T) {
	var s Set
	src := `
- {prop: tile, op: in, value: [floor, door]}
- {prop: playerDistance, op: gte, value: 6}
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	require.Len(t, s, 2)
	assert.True(t, s.Match(props(map[string]any{"tile": "door", "playerDistance": 6})))
	assert.False(t, s.Match(props(map[string]any{"tile": "door", "playerDistance": 2})))
}
