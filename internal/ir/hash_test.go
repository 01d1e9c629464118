package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"col":"a"}`)

	h1 := HashWithDomain(DomainExpr, data)
	h2 := HashWithDomain(DomainPlan, data)

	assert.NotEqual(t, h1, h2, "different domains must not collide")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
	assert.Equal(t, h1, HashWithDomain(DomainExpr, data))
}

func TestHashWithDomainSeparator(t *testing.T) {
	// Without the null separator these two would hash the same bytes.
	assert.NotEqual(t,
		HashWithDomain("ab", []byte("c")),
		HashWithDomain("a", []byte("bc")))
}

func TestFingerprintKeyOrderIndependent(t *testing.T) {
	a := map[string]any{"x": 1, "y": "two"}
	b := map[string]any{"y": "two", "x": 1}

	fa, err := Fingerprint(DomainExpr, a)
	require.NoError(t, err)
	fb, err := Fingerprint(DomainExpr, b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}

func TestFingerprintError(t *testing.T) {
	_, err := Fingerprint(DomainPlan, map[string]any{"f": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), DomainPlan)
}

func TestDescribeValue(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"null", NullValue{}, `{"null":true}`},
		{"bool", BoolValue(true), `{"bool":true}`},
		{"int", IntValue(-3), `{"int":-3}`},
		{"uint", UIntValue(3), `{"uint":3}`},
		{"float", FloatValue(2.5), `{"float":"2.5"}`},
		{"str", Utf8Value("hi"), `{"str":"hi"}`},
		{"range", RangeValue{Low: 0, High: 10, Type: Int64}, `{"range":{"dtype":"i64","high":10,"low":0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := MarshalCanonical(DescribeValue(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(b))
		})
	}
}

func TestDocDropsNil(t *testing.T) {
	d := Doc("a", 1, "b", nil, "c", DescribeStrings(nil))
	assert.Equal(t, map[string]any{"a": 1}, d)

	d = Doc("names", DescribeStrings([]string{}))
	assert.Equal(t, map[string]any{"names": []any{}}, d)
}
