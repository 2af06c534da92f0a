package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		want        Params
	}{
		{"defaults applied", 0, 0, Params{Page: 1, Limit: 20, Offset: 0}},
		{"negative page", -3, 10, Params{Page: 1, Limit: 10, Offset: 0}},
		{"limit capped", 2, 500, Params{Page: 2, Limit: 100, Offset: 100}},
		{"normal", 3, 25, Params{Page: 3, Limit: 25, Offset: 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp(tc.page, tc.limit))
		})
	}
}
