package element

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValueScalars(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		text  string
	}{
		{"string", "hello", "hello"},
		{"bool", true, "true"},
		{"int64", int64(42), "42"},
		{"whole float", float64(42), "42"},
		{"fractional float", 3.5, "3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elem, err := FromValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, TextType, elem.Type)
			assert.Equal(t, tt.text, elem.Text)
		})
	}
}

func TestFromValueTree(t *testing.T) {
	v := map[string]interface{}{
		"type":  "panel",
		"props": map[string]interface{}{"kind": "faculty"},
		"children": []interface{}{
			map[string]interface{}{
				"type":     "heading",
				"children": []interface{}{"Dr. Elena Vasquez"},
			},
			"footnote",
		},
	}

	elem, err := FromValue(v)
	require.NoError(t, err)

	assert.Equal(t, "panel", elem.Type)
	assert.Equal(t, "faculty", elem.Props["kind"])
	require.Len(t, elem.Children, 2)
	assert.Equal(t, "heading", elem.Children[0].Type)
	assert.Equal(t, "footnote", elem.Children[1].Text)
}

func TestFromValueFlattensNestedArrays(t *testing.T) {
	// List rendering produces an array child; its entries collapse into
	// the parent.
	v := map[string]interface{}{
		"type": "table",
		"children": []interface{}{
			[]interface{}{
				map[string]interface{}{"type": "row", "children": []interface{}{"a"}},
				map[string]interface{}{"type": "row", "children": []interface{}{"b"}},
			},
		},
	}

	elem, err := FromValue(v)
	require.NoError(t, err)
	require.Len(t, elem.Children, 2)
	assert.Equal(t, "row", elem.Children[0].Type)
	assert.Equal(t, "row", elem.Children[1].Type)
}

func TestFromValueSkipsNilChildren(t *testing.T) {
	v := map[string]interface{}{
		"type":     "div",
		"children": []interface{}{nil, "kept", nil},
	}

	elem, err := FromValue(v)
	require.NoError(t, err)
	require.Len(t, elem.Children, 1)
	assert.Equal(t, "kept", elem.Children[0].Text)
}

func TestFromValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"nil", nil},
		{"missing type", map[string]interface{}{"props": map[string]interface{}{}}},
		{"unsupported kind", []string{"not", "an", "element"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue(tt.value)
			assert.Error(t, err)
		})
	}
}

func TestContainsText(t *testing.T) {
	elem := New("panel",
		map[string]interface{}{"title": "Reputation"},
		New("stat", nil, Text("h-index 34")),
	)

	assert.True(t, elem.ContainsText("h-index"))
	assert.True(t, elem.ContainsText("Reputation"), "props participate in search")
	assert.False(t, elem.ContainsText("citations"))
	assert.False(t, (*Element)(nil).ContainsText("anything"))
}

func TestFind(t *testing.T) {
	elem := New("panel", nil,
		New("heading", nil, Text("title")),
		New("stat", map[string]interface{}{"label": "first"}),
		New("stat", map[string]interface{}{"label": "second"}),
	)

	found := elem.Find("stat")
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Props["label"])
	assert.Nil(t, elem.Find("table"))
}

func TestJSONShape(t *testing.T) {
	elem := New("badge", map[string]interface{}{"status": "verified"}, Text("ok"))

	data, err := sonic.Marshal(elem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, "badge", decoded["type"])

	// Empty fields stay off the wire.
	bare, err := sonic.Marshal(Text("leaf"))
	require.NoError(t, err)
	assert.NotContains(t, string(bare), "props")
	assert.NotContains(t, string(bare), "children")
}
