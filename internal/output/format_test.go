package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{" ndjson ", FormatNDJSON, false},
		{"yaml", FormatYAML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func render(t *testing.T, ctx context.Context, format Format, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, format).Print(ctx, data))
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := render(t, context.Background(), FormatJSON, item{Name: "Dev", Count: 2})
	assert.JSONEq(t, `{"name":"Dev","count":2}`, out)
}

func TestPrintNDJSONSplitsLists(t *testing.T) {
	out := render(t, context.Background(), FormatNDJSON, []item{{"a", 1}, {"b", 2}})
	assert.Equal(t, "{\"count\":1,\"name\":\"a\"}\n{\"count\":2,\"name\":\"b\"}\n", out)
}

func TestPrintYAML(t *testing.T) {
	out := render(t, context.Background(), FormatYAML, item{Name: "Dev", Count: 2})
	assert.Equal(t, "count: 2\nname: Dev\n", out)
}

func TestPrintWithQuery(t *testing.T) {
	ctx := WithQuery(context.Background(), ".[].name")
	out := render(t, ctx, FormatJSON, []item{{"a", 1}, {"b", 2}})
	assert.Equal(t, "\"a\"\n\"b\"\n", out)

	ctx = WithQuery(context.Background(), "map(.count) | add")
	out = render(t, ctx, FormatJSON, []item{{"a", 1}, {"b", 2}})
	assert.Equal(t, "3\n", out)
}

func TestPrintInvalidQuery(t *testing.T) {
	ctx := WithQuery(context.Background(), ".[")
	var buf bytes.Buffer
	err := NewPrinter(&buf, FormatJSON).Print(ctx, []item{})
	assert.ErrorContains(t, err, "invalid --query")
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatTable).PrintTable(Table{
		Headers: []string{"NAME", "COUNT"},
		Rows:    [][]string{{"Dev", "2"}, {"Bookmarks Bar", "10"}},
	}))
	assert.Equal(t,
		"NAME           COUNT\n"+
			"Dev            2\n"+
			"Bookmarks Bar  10\n",
		buf.String())
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, FormatText, FormatFromContext(ctx))
	assert.Equal(t, "", QueryFromContext(ctx))

	ctx = WithFormat(ctx, FormatYAML)
	assert.Equal(t, FormatYAML, FormatFromContext(ctx))
}
