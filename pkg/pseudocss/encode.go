// SPDX-License-Identifier: GPL-3.0-or-later

package pseudocss

import (
	"strings"

	"github.com/valyala/fastjson"
)

const hex = "0123456789abcdef"

// appendIndented writes v as 2-space indented JSON. Object keys keep their first position,
// a repeated key takes the last value.
func appendIndented(dst []byte, v *fastjson.Value, depth int) []byte {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		var keys []string
		values := make(map[string]*fastjson.Value)
		obj.Visit(func(key []byte, v *fastjson.Value) {
			k := string(key)
			if _, ok := values[k]; !ok {
				keys = append(keys, k)
			}
			values[k] = v
		})
		if len(keys) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for i, k := range keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, depth+1)
			dst = appendString(dst, k)
			dst = append(dst, ": "...)
			dst = appendIndented(dst, values[k], depth+1)
		}
		dst = appendNewline(dst, depth)
		return append(dst, '}')
	case fastjson.TypeArray:
		arr, _ := v.Array()
		if len(arr) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, item := range arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, depth+1)
			dst = appendIndented(dst, item, depth+1)
		}
		dst = appendNewline(dst, depth)
		return append(dst, ']')
	case fastjson.TypeString:
		return appendString(dst, string(v.GetStringBytes()))
	default:
		return v.MarshalTo(dst)
	}
}

func appendNewline(dst []byte, depth int) []byte {
	dst = append(dst, '\n')
	return append(dst, strings.Repeat("  ", depth)...)
}

// appendString quotes s the way browsers serialize JSON strings: only quotes, backslashes
// and control characters are escaped.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\b':
			dst = append(dst, `\b`...)
		case '\f':
			dst = append(dst, `\f`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\r':
			dst = append(dst, `\r`...)
		case '\t':
			dst = append(dst, `\t`...)
		default:
			if c < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&15])
			} else {
				dst = append(dst, c)
			}
		}
	}
	return append(dst, '"')
}
