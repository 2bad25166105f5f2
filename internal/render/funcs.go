package render

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

func templateFuncs(staticURL string) template.FuncMap {
	return template.FuncMap{
		"intcomma":  intcomma,
		"pluralize": pluralize,
		"static": func(asset string) string {
			return staticURL + strings.TrimPrefix(asset, "/")
		},
	}
}

// toInt64 accepts any integer kind a handler is likely to put in a Context.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

// intcomma formats an integer with comma thousands separators: 1234567 -> "1,234,567".
func intcomma(v any) (string, error) {
	n, err := toInt64(v)
	if err != nil {
		return "", err
	}

	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s, nil
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String(), nil
}

// pluralize returns "s" unless v is exactly 1.
func pluralize(v any) (string, error) {
	n, err := toInt64(v)
	if err != nil {
		return "", err
	}
	if n == 1 {
		return "", nil
	}
	return "s", nil
}
