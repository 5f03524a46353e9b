package mocks

import "fmt"

// node and text mirror the element shapes the sandbox's h() produces, so
// substitute output is indistinguishable from inline markup.
func node(typ string, props map[string]interface{}, children ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":     typ,
		"props":    props,
		"children": children,
	}
}

func text(s string) map[string]interface{} {
	return map[string]interface{}{"type": "#text", "text": s}
}

func str(props map[string]interface{}, key, fallback string) string {
	if v, ok := props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func num(props map[string]interface{}, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// builtins lists every substitute implementation available to previewed
// components. Names must match the identifiers component sources import.
func builtins() []Binding {
	return []Binding{
		{
			Name:        "ValidationBadge",
			Description: "Status badge standing in for the SVG validation badge",
			Render: func(props map[string]interface{}, _ []interface{}) map[string]interface{} {
				status := str(props, "status", "unknown")
				return node("badge",
					map[string]interface{}{"status": status, "size": str(props, "size", "medium")},
					text(status),
				)
			},
		},
		{
			Name:        "ReputationIcon",
			Description: "Reputation tier icon derived from a numeric score",
			Render: func(props map[string]interface{}, _ []interface{}) map[string]interface{} {
				score := num(props, "score")
				tier := "none"
				switch {
				case score >= 75:
					tier = "gold"
				case score >= 50:
					tier = "silver"
				case score > 0:
					tier = "bronze"
				}
				return node("icon",
					map[string]interface{}{"tier": tier, "score": score},
					text(tier),
				)
			},
		},
		{
			Name:        "FacultyCard",
			Description: "Compact faculty summary card",
			Render: func(props map[string]interface{}, children []interface{}) map[string]interface{} {
				name := str(props, "name", "Unknown Faculty")
				kids := []interface{}{
					node("heading", nil, text(name)),
					node("subtitle", nil, text(str(props, "department", ""))),
					node("subtitle", nil, text(str(props, "institution", ""))),
				}
				kids = append(kids, children...)
				return node("card", map[string]interface{}{"kind": "faculty"}, kids...)
			},
		},
		{
			Name:        "PublicationTable",
			Description: "Data-driven publication list",
			Render: func(props map[string]interface{}, _ []interface{}) map[string]interface{} {
				header := node("row", map[string]interface{}{"header": true},
					text("Title"), text("Year"), text("Citations"))
				rows := []interface{}{header}
				if list, ok := props["rows"].([]interface{}); ok {
					for _, raw := range list {
						entry, ok := raw.(map[string]interface{})
						if !ok {
							continue
						}
						rows = append(rows, node("row", nil,
							text(str(entry, "title", "")),
							text(fmt.Sprintf("%.0f", num(entry, "year"))),
							text(fmt.Sprintf("%.0f", num(entry, "citations"))),
						))
					}
				}
				return node("table", map[string]interface{}{"kind": "publications"}, rows...)
			},
		},
		{
			Name:        "MetricStat",
			Description: "Single labeled metric value",
			Render: func(props map[string]interface{}, _ []interface{}) map[string]interface{} {
				return node("stat",
					map[string]interface{}{"label": str(props, "label", "")},
					text(fmt.Sprintf("%g", num(props, "value"))),
				)
			},
		},
		{
			Name:        "LoadingSpinner",
			Description: "Inert loading indicator",
			Render: func(_ map[string]interface{}, _ []interface{}) map[string]interface{} {
				return node("spinner", nil, text("loading"))
			},
		},
		{
			Name:        "ErrorNotice",
			Description: "Inline error panel used by components' own error states",
			Render: func(props map[string]interface{}, _ []interface{}) map[string]interface{} {
				return node("notice",
					map[string]interface{}{"level": "error"},
					text(str(props, "message", "something went wrong")),
				)
			},
		},
	}
}
