package dispatch

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menpo/shogun/record"
)

type food int

func (food) EnumValues() []string { return []string{"gnocchi", "kimchi"} }

type mode string

func (mode) Choices() []string { return []string{"fast", "slow"} }

// csvList parses itself from comma-separated text.
type csvList []string

func (l *csvList) UnmarshalText(text []byte) error {
	*l = csvList(strings.Split(string(text), ","))
	return nil
}

// fieldFor wraps rec and returns the named field.
func fieldFor(t *testing.T, rec any, name string) record.Field {
	t.Helper()
	s, err := record.Wrap(reflect.TypeOf(rec))
	require.NoError(t, err)
	f, ok := s.Field(name)
	require.True(t, ok, "field %q", name)
	return f
}

func singleSpec(t *testing.T, f record.Field) FlagSpec {
	t.Helper()
	specs, err := Default().Flags(f)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	return specs[0]
}

func TestBoolRuleToggles(t *testing.T) {
	type rec struct {
		Quiet   bool `default:"true"`
		Verbose bool
	}

	t.Run("default true stores false", func(t *testing.T) {
		spec := singleSpec(t, fieldFor(t, rec{}, "quiet"))
		assert.Equal(t, "false", spec.NoOptDefVal)
		assert.False(t, spec.Required)
		assert.Equal(t, true, spec.Value.Get())

		require.NoError(t, spec.Value.Set(spec.NoOptDefVal))
		assert.Equal(t, false, spec.Value.Get())
	})

	t.Run("no default stores true", func(t *testing.T) {
		spec := singleSpec(t, fieldFor(t, rec{}, "verbose"))
		assert.Equal(t, "true", spec.NoOptDefVal)
		assert.False(t, spec.Required, "a defaultless bool is still optional")
		assert.Equal(t, false, spec.Value.Get())

		require.NoError(t, spec.Value.Set(spec.NoOptDefVal))
		assert.Equal(t, true, spec.Value.Get())
	})
}

func TestEnumRule(t *testing.T) {
	type rec struct {
		Food food `help:"what to eat"`
	}
	spec := singleSpec(t, fieldFor(t, rec{}, "food"))

	assert.Equal(t, "{gnocchi,kimchi}", spec.Metavar)
	assert.True(t, spec.Required)

	require.NoError(t, spec.Value.Set("kimchi"))
	assert.Equal(t, food(1), spec.Value.Get())

	err := spec.Value.Set("poutine")
	var choiceErr *ChoiceError
	require.ErrorAs(t, err, &choiceErr)
	assert.Equal(t, "poutine", choiceErr.Value)
	assert.Equal(t, []string{"gnocchi", "kimchi"}, choiceErr.Choices)

	got, err := EnumRule{}.Primitive(Default(), reflect.ValueOf(food(1)))
	require.NoError(t, err)
	assert.Equal(t, "kimchi", got)
}

func TestLiteralRule(t *testing.T) {
	type rec struct {
		Mode mode `default:"fast"`
	}
	spec := singleSpec(t, fieldFor(t, rec{}, "mode"))

	assert.Equal(t, "{fast,slow}", spec.Metavar)

	require.NoError(t, spec.Value.Set("slow"))
	assert.Equal(t, mode("slow"), spec.Value.Get())

	var choiceErr *ChoiceError
	require.ErrorAs(t, spec.Value.Set("warp"), &choiceErr)

	got, err := LiteralRule{}.Primitive(Default(), reflect.ValueOf(mode("fast")))
	require.NoError(t, err)
	assert.Equal(t, "fast", got)
}

func TestContainerRuleNeedsConverter(t *testing.T) {
	f := record.Field{
		Name: "items",
		Type: reflect.TypeOf([]string{}),
	}
	_, err := Default().Flags(f)
	assert.ErrorIs(t, err, ErrMissingConverter)
}

func TestContainerRuleWithConverter(t *testing.T) {
	f := record.Field{
		Name: "items",
		Type: reflect.TypeOf([]string{}),
		Meta: record.Arg{
			Converter: func(s string) (any, error) {
				return strings.Split(s, ","), nil
			},
		},
	}
	spec := singleSpec(t, f)

	require.NoError(t, spec.Value.Set("a,b,c"))
	assert.Equal(t, []string{"a", "b", "c"}, spec.Value.Get())
}

func TestContainerRuleTextUnmarshaler(t *testing.T) {
	f := record.Field{
		Name: "items",
		Type: reflect.TypeOf(csvList{}),
	}
	spec := singleSpec(t, f)

	require.NoError(t, spec.Value.Set("x,y"))
	assert.Equal(t, csvList{"x", "y"}, spec.Value.Get())
}

func TestContainerPrimitive(t *testing.T) {
	reg := Default()

	t.Run("sequence recurses", func(t *testing.T) {
		got, err := reg.Serialize(reflect.ValueOf([]food{1, 0}))
		require.NoError(t, err)
		assert.Equal(t, []any{"kimchi", "gnocchi"}, got)
	})

	t.Run("map keys become sorted strings", func(t *testing.T) {
		got, err := reg.Serialize(reflect.ValueOf(map[int]string{2: "b", 1: "a"}))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"1": "a", "2": "b"}, got)
	})

	t.Run("non-scalar key fails", func(t *testing.T) {
		_, err := reg.Serialize(reflect.ValueOf(map[[2]int]string{{1, 2}: "x"}))
		var keyErr *UnserializableKeyError
		assert.ErrorAs(t, err, &keyErr)
	})
}

func TestNestedRecordRule(t *testing.T) {
	type room struct {
		Size  int  `default:"9"`
		Light bool `default:"true"`
	}
	type house struct {
		Name  string `required:"true"`
		Room1 room
	}

	specs, err := Default().Flags(fieldFor(t, house{}, "room1"))
	require.NoError(t, err)

	var names []string
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"room1-size", "room1-light"}, names)
	assert.Equal(t, "false", specs[1].NoOptDefVal, "nested bool keeps its toggle")
}

func TestNestedRecordRejectsShorthand(t *testing.T) {
	type inner struct {
		Count int `short:"n"`
	}
	type outer struct {
		In inner
	}

	_, err := Default().Flags(fieldFor(t, outer{}, "in"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shorthand")
}

func TestNestedRecordRejectsOuterShorthand(t *testing.T) {
	type inner struct {
		Count int
	}
	type outer struct {
		In inner `short:"i"`
	}

	_, err := Default().Flags(fieldFor(t, outer{}, "in"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shorthand")
	assert.Contains(t, err.Error(), `"in"`)
}

func TestDefaultRuleChoices(t *testing.T) {
	type rec struct {
		Level string `choices:"debug,info" default:"info"`
	}
	spec := singleSpec(t, fieldFor(t, rec{}, "level"))

	require.NoError(t, spec.Value.Set("debug"))

	var choiceErr *ChoiceError
	require.ErrorAs(t, spec.Value.Set("loud"), &choiceErr)
	assert.Equal(t, []string{"debug", "info"}, choiceErr.Choices)
}

func TestDefaultRulePrimitive(t *testing.T) {
	reg := Default()
	tests := []struct {
		in   any
		want any
	}{
		{"text", "text"},
		{true, true},
		{42, int64(42)},
		{uint8(7), uint64(7)},
		{1.5, 1.5},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		got, err := reg.Serialize(reflect.ValueOf(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Serialize(%v)", tt.in)
	}
}

func TestScalarBoxRejectsUnsupportedTypes(t *testing.T) {
	f := record.Field{Name: "ch", Type: reflect.TypeOf(make(chan int))}
	_, err := Default().Flags(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestDurationBox(t *testing.T) {
	type rec struct {
		Timeout time.Duration `default:"30s"`
	}
	spec := singleSpec(t, fieldFor(t, rec{}, "timeout"))

	assert.Equal(t, "duration", spec.Value.Type())
	assert.Equal(t, "30s", spec.Value.String())

	require.NoError(t, spec.Value.Set("1m30s"))
	assert.Equal(t, 90*time.Second, spec.Value.Get())
}
