package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want decomposed
	}{
		{
			name: "full comma pattern",
			in:   "123 Main St, Anytown, CA 90210",
			want: decomposed{street: "123 Main St", city: "Anytown", state: "CA", zip: "90210"},
		},
		{
			name: "zip plus four",
			in:   "123 Main St, Anytown, CA 90210-1234",
			want: decomposed{street: "123 Main St", city: "Anytown", state: "CA", zip: "90210-1234"},
		},
		{
			name: "street containing comma",
			in:   "Apt 4, 123 Main St, Anytown, CA 90210",
			want: decomposed{street: "Apt 4, 123 Main St", city: "Anytown", state: "CA", zip: "90210"},
		},
		{
			name: "state zip anchor with trailing country",
			in:   "456 Oak Ave, Shelbyville, IL 62702 USA",
			want: decomposed{street: "456 Oak Ave", city: "Shelbyville", state: "IL", zip: "62702"},
		},
		{
			name: "state zip anchor single comma",
			in:   "456 Oak Ave Shelbyville, IL 62702 USA",
			want: decomposed{street: "456 Oak Ave Shelbyville", state: "IL", zip: "62702"},
		},
		{
			name: "state zip anchor without comma",
			in:   "456 Oak Ave IL 62702",
			want: decomposed{street: "456 Oak Ave", state: "IL", zip: "62702"},
		},
		{
			name: "no recognizable parts",
			in:   "the blue house near the river",
			want: decomposed{street: "the blue house near the river"},
		},
		{
			name: "whitespace trimmed",
			in:   "  12 Elm St, Springfield, IL 62701  ",
			want: decomposed{street: "12 Elm St", city: "Springfield", state: "IL", zip: "62701"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decomposeAddress(tt.in))
		})
	}
}
