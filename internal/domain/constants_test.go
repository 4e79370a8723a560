package domain

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	m "github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

func TestConstantPool_AddAndQuery(t *testing.T) {
	pool := NewConstantPool()

	assert.True(t, pool.Add(int64(3)))
	assert.True(t, pool.Add(int64(3)))
	assert.True(t, pool.Add(2.5))
	assert.True(t, pool.Add("x"))
	assert.False(t, pool.Add(true), "bool is not a constant type")
	assert.False(t, pool.Add(nil))
	assert.False(t, pool.Add(vm.NewList()))
	assert.False(t, pool.Add(math.NaN()), "NaN never equals itself")
	assert.False(t, pool.Add(math.NaN()))

	assert.Len(t, pool.GetAllConstantsFor(m.ValueInt), 1)
	assert.Len(t, pool.GetAllConstantsFor(m.ValueFloat), 1)
	assert.True(t, pool.HasConstantFor(m.ValueFloat))
	assert.True(t, pool.HasConstantFor(m.ValueString))

	empty := NewConstantPool()
	assert.False(t, empty.HasConstantFor(m.ValueInt))
	assert.Empty(t, empty.GetAllConstantsFor(m.ValueInt))

	copied := pool.GetAllConstantsFor(m.ValueInt)
	copied[int64(99)] = struct{}{}
	assert.Len(t, pool.GetAllConstantsFor(m.ValueInt), 1, "returned sets are copies")
}

func TestConstantPool_Snapshot(t *testing.T) {
	pool := NewConstantPool()
	for _, v := range []any{int64(5), int64(-1), "b", "a"} {
		pool.Add(v)
	}

	snapshot := pool.Snapshot()
	assert.Equal(t, []any{int64(-1), int64(5)}, snapshot[m.ValueInt])
	assert.Equal(t, []any{"a", "b"}, snapshot[m.ValueString])
	assert.NotContains(t, snapshot, m.ValueFloat)
}

func TestCollectConstants_WalksNestedUnits(t *testing.T) {
	units, err := bytecode.AssembleModule(closureSource)
	require.NoError(t, err)
	require.Len(t, units, 1)

	pool := CollectConstants(units...)
	assert.Equal(t, []any{int64(2)}, pool.Snapshot()[m.ValueInt])

	pool = CollectConstants(bytecode.MustAssemble(classifySource))
	assert.Equal(t, []any{`neg`, `pos`}, pool.Snapshot()[m.ValueString])
}

func TestDynamicConstantProvider_Admission(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		maxLength   int
		values      []any
		wantInts    int
		wantStrings int
	}{
		{name: "always", probability: 1, maxLength: 30, values: []any{int64(1), int64(2), "ab"}, wantInts: 2, wantStrings: 1},
		{name: "never", probability: 0, maxLength: 30, values: []any{int64(1), "ab"}},
		{name: "too long", probability: 1, maxLength: 3, values: []any{"abcd", "abc", "äöü"}, wantStrings: 2},
		{name: "unsupported types", probability: 1, maxLength: 30, values: []any{true, nil, vm.NewList()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewConstantPool()
			provider := NewDynamicConstantProvider(pool, nil, tt.probability, tt.maxLength, 1)

			for _, v := range tt.values {
				provider.AddValue(v)
			}

			assert.Len(t, pool.GetAllConstantsFor(m.ValueInt), tt.wantInts)
			assert.Len(t, pool.GetAllConstantsFor(m.ValueString), tt.wantStrings)
		})
	}
}

func TestDynamicConstantProvider_ProbabilityIsSeeded(t *testing.T) {
	admitted := func(seed uint64) []any {
		pool := NewConstantPool()
		provider := NewDynamicConstantProvider(pool, nil, 0.5, 30, seed)

		for i := range 200 {
			provider.AddValue(int64(i))
		}

		return pool.Snapshot()[m.ValueInt]
	}

	first := admitted(7)
	assert.Equal(t, first, admitted(7))
	assert.NotEmpty(t, first)
	assert.Less(t, len(first), 200)
}

func TestDynamicConstantProvider_GetConstantFor(t *testing.T) {
	static := NewConstantPool()
	static.Add("static")

	pool := NewConstantPool()
	provider := NewDynamicConstantProvider(pool, NewStaticConstantProvider(static, 3), 1, 30, 3)

	v, ok := provider.GetConstantFor(m.ValueString)
	require.True(t, ok)
	assert.Equal(t, "static", v, "falls back to the delegate")
	assert.False(t, provider.HasConstantFor(m.ValueString))

	provider.AddValue("dynamic")

	v, ok = provider.GetConstantFor(m.ValueString)
	require.True(t, ok)
	assert.Equal(t, "dynamic", v)
	assert.True(t, provider.HasConstantFor(m.ValueString))

	_, ok = provider.GetConstantFor(m.ValueFloat)
	assert.False(t, ok)

	_, ok = NewDynamicConstantProvider(NewConstantPool(), EmptyConstantProvider{}, 1, 30, 3).GetConstantFor(m.ValueInt)
	assert.False(t, ok)
}

func TestDynamicConstantProvider_AddValueForStrings(t *testing.T) {
	pool := NewConstantPool()
	provider := NewDynamicConstantProvider(pool, nil, 1, 30, 1)

	provider.AddValueForStrings("abc", "isalpha")
	provider.AddValueForStrings("xyz", "upper")

	assert.Equal(t, []any{"abc", "abc1", "xyz"}, pool.Snapshot()[m.ValueString])
}

func TestAdversarialString_FlipsPredicate(t *testing.T) {
	inputs := []string{"", "abc", "ABC", "Abc", "Title Case", "123", "١٢٣", "a1", " ", "\t\n", "_x", "9x", "hello world", "mixed CASE", "line\n", "½", "ß", "ŉ", "ϒ", "xϒ", "Aß"}

	methods := make([]string, 0, len(vm.StringPredicates))
	for name := range vm.StringPredicates {
		methods = append(methods, name)
	}

	sort.Strings(methods)

	for _, method := range methods {
		pred := vm.StringPredicates[method]

		for _, s := range inputs {
			adversarial, ok := AdversarialString(method, s)
			require.True(t, ok, method)
			assert.NotEqual(t, pred(s), pred(adversarial), "%s(%q) vs %s(%q)", method, s, method, adversarial)
		}
	}
}

func TestAdversarialString_UnknownMethod(t *testing.T) {
	_, ok := AdversarialString("upper", "abc")
	assert.False(t, ok)
}

func TestAdversarialString_Examples(t *testing.T) {
	tests := []struct {
		method, in, want string
	}{
		{method: "isalnum", in: "abc", want: "abc!"},
		{method: "isalnum", in: "a b", want: "isalnum"},
		{method: "islower", in: "abc", want: "ABC"},
		{method: "islower", in: "123", want: "123a"},
		{method: "isupper", in: "ABC", want: "abc"},
		{method: "isupper", in: "Abc", want: "ABC"},
		{method: "isdecimal", in: "12", want: "non_decimal"},
		{method: "isdigit", in: "x", want: "0"},
		{method: "isspace", in: " ", want: " a"},
		{method: "istitle", in: "Hello", want: "Hello AAA"},
		{method: "isprintable", in: "ok", want: "ok\n"},
	}

	for _, tt := range tests {
		got, ok := AdversarialString(tt.method, tt.in)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "%s(%q)", tt.method, tt.in)
		assert.False(t, strings.Contains(got, "\x00"))
	}
}
