package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "two mentions in order",
			body: "@[Alice](u1) and @[Bob](u2), please review",
			want: []string{"u1", "u2"},
		},
		{
			name: "no mentions",
			body: "nothing to see here",
			want: nil,
		},
		{
			name: "bare at-sign ignored",
			body: "ping @alice about the VAT return",
			want: nil,
		},
		{
			name: "name without id ignored",
			body: "@[Alice] forgot the id",
			want: nil,
		},
		{
			name: "duplicates preserved",
			body: "@[Alice](u1) then @[Alice](u1) again",
			want: []string{"u1", "u1"},
		},
		{
			name: "mention embedded mid-sentence",
			body: "done, handing over to @[Carol Smith](u3).",
			want: []string{"u3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.body))
		})
	}
}
