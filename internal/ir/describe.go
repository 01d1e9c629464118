package ir

// The Describe functions render payloads as canonical document values
// (see MarshalCanonical).

// DescribeValue renders a literal.
func DescribeValue(v Value) any {
	switch x := v.(type) {
	case nil, NullValue:
		return map[string]any{"null": true}
	case BoolValue:
		return map[string]any{"bool": bool(x)}
	case IntValue:
		return map[string]any{"int": int64(x)}
	case UIntValue:
		return map[string]any{"uint": uint64(x)}
	case FloatValue:
		return map[string]any{"float": FormatFloat(float64(x))}
	case Utf8Value:
		return map[string]any{"str": string(x)}
	case RangeValue:
		return map[string]any{"range": map[string]any{
			"low":   x.Low,
			"high":  x.High,
			"dtype": x.Type.String(),
		}}
	case SeriesValue:
		if x.Series == nil {
			return map[string]any{"series": map[string]any{}}
		}
		return map[string]any{"series": map[string]any{
			"name":  x.Series.Name(),
			"dtype": x.Series.DType().String(),
			"len":   x.Series.Len(),
		}}
	default:
		panic("ir: unknown literal type")
	}
}

// DescribeSchema renders a schema as an ordered list of "name: type".
func DescribeSchema(s *Schema) []any {
	out := make([]any, s.Len())
	for i, f := range s.Fields() {
		out[i] = f.String()
	}
	return out
}

// DescribeStrings renders a string list, keeping nil distinct from empty
// by returning nil for nil.
func DescribeStrings(ss []string) any {
	if ss == nil {
		return nil
	}
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// DescribeFrame renders a data frame by shape; its rows are not part of a
// plan's identity.
func DescribeFrame(df DataFrame) any {
	if df == nil {
		return map[string]any{}
	}
	return map[string]any{
		"schema": DescribeSchema(df.Schema()),
		"height": df.Height(),
	}
}

// Doc builds a canonical document from key/value pairs, dropping nil
// values so absent optionals are simply missing.
func Doc(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == nil {
			continue
		}
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}
