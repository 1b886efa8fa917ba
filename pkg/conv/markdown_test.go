package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "bold and italic",
			input: "**bold** and *italic*",
			want:  []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:  "inline code",
			input: "run `go test` now",
			want:  []string{"<code>go test</code>"},
		},
		{
			name:    "headings stripped",
			input:   "# Title\n\nbody",
			want:    []string{"Title", "body"},
			notWant: []string{"<h1>"},
		},
		{
			name:    "script removed",
			input:   "hello <script>alert(1)</script>",
			notWant: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output %q missing %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output %q should not contain %q", got, nw)
				}
			}
		})
	}
}
