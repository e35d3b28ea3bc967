// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

// StyleSheet flattens translated pseudo-CSS into a stylesheet. Top level selectors are
// prefixed with the scope class; "&" refers to the parent selector and comma separated
// selectors are expanded against every parent.
//
//	{"td": {"color": "red", "&.warn": {"color": "orange"}}}  =>
//	._x td { color: red; }
//	._x td.warn { color: orange; }
func StyleSheet(styleJSON, scope string) (string, error) {
	var p fastjson.Parser
	v, err := p.Parse(styleJSON)
	if err != nil {
		return "", fmt.Errorf("parse style: %v", err)
	}
	obj, err := v.Object()
	if err != nil {
		return "", fmt.Errorf("parse style: %v", err)
	}

	var sb strings.Builder
	writeRules(&sb, []string{"." + scope}, obj)

	// a value must not close the style element
	return strings.ReplaceAll(sb.String(), "</", `<\/`), nil
}

func writeRules(sb *strings.Builder, selectors []string, obj *fastjson.Object) {
	var decls []string
	type child struct {
		key string
		obj *fastjson.Object
	}
	var children []child

	obj.Visit(func(key []byte, v *fastjson.Value) {
		switch v.Type() {
		case fastjson.TypeObject:
			o, _ := v.Object()
			children = append(children, child{key: string(key), obj: o})
		case fastjson.TypeArray:
			for _, e := range v.GetArray() {
				if s, ok := declValue(e); ok {
					decls = append(decls, string(key)+": "+s+";")
				}
			}
		default:
			if s, ok := declValue(v); ok {
				decls = append(decls, string(key)+": "+s+";")
			}
		}
	})

	if len(decls) > 0 {
		sb.WriteString(strings.Join(selectors, ", "))
		sb.WriteString(" {\n")
		for _, d := range decls {
			sb.WriteString("  ")
			sb.WriteString(d)
			sb.WriteByte('\n')
		}
		sb.WriteString("}\n")
	}

	for _, c := range children {
		writeRules(sb, nestSelectors(selectors, c.key), c.obj)
	}
}

func nestSelectors(parents []string, key string) []string {
	var out []string
	for _, part := range strings.Split(key, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, p := range parents {
			if strings.Contains(part, "&") {
				out = append(out, strings.ReplaceAll(part, "&", p))
			} else {
				out = append(out, p+" "+part)
			}
		}
	}
	return out
}

func declValue(v *fastjson.Value) (string, bool) {
	switch v.Type() {
	case fastjson.TypeString:
		return strings.TrimSpace(string(v.GetStringBytes())), true
	case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
		return v.String(), true
	default:
		return "", false
	}
}
