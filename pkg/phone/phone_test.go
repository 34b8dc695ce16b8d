package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{name: "national number", raw: "07400 123456", region: "GB", want: "+447400123456"},
		{name: "international number ignores region", raw: "+44 121 234 5678", region: "US", want: "+441212345678"},
		{name: "surrounding whitespace", raw: "  0121 234 5678 ", region: "GB", want: "+441212345678"},
		{name: "invalid kept as typed", raw: "12345", region: "GB", want: "12345"},
		{name: "unparseable kept as typed", raw: "call reception", region: "GB", want: "call reception"},
		{name: "empty", raw: "   ", region: "GB", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.region))
		})
	}
}
