package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Metadata
		wantOK  bool
	}{
		{
			name:    "all fields",
			content: "---\ntitle: \"Orders\"\ndescription: 'Order facts'\nicon: table\n---\n\nBody",
			want:    Metadata{Title: "Orders", Description: "Order facts", Icon: "table"},
			wantOK:  true,
		},
		{
			name:    "empty quoted values",
			content: "---\ntitle: 'orders'\ndescription: ''\n---\n",
			want:    Metadata{Title: "orders"},
			wantOK:  true,
		},
		{
			name:    "nested keys are ignored",
			content: "---\ntitle: Top\nseo:\n  title: Nested\n---\n",
			want:    Metadata{Title: "Top"},
			wantOK:  true,
		},
		{
			name:    "no frontmatter",
			content: "# Heading\n---\ntitle: Late\n---\n",
			wantOK:  false,
		},
		{
			name:    "unterminated",
			content: "---\ntitle: Open\n",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseString(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
