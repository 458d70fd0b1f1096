package shipapi_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		params   *shipapi.ListParams
		expected url.Values
	}{
		{
			name:     "nil params",
			params:   nil,
			expected: url.Values{},
		},
		{
			name:     "empty params",
			params:   shipapi.NewListParams(),
			expected: url.Values{},
		},
		{
			name:   "cursor",
			params: shipapi.NewListParams().WithPageSize(20).WithBeforeID("user_2"),
			expected: url.Values{
				"page_size": []string{"20"},
				"before_id": []string{"user_2"},
			},
		},
		{
			name:   "after cursor",
			params: shipapi.NewListParams().WithBeforeID("user_9").WithAfterID("user_1"),
			expected: url.Values{
				"before_id": []string{"user_9"},
				"after_id":  []string{"user_1"},
			},
		},
		{
			name:   "start datetime",
			params: &shipapi.ListParams{StartDatetime: &start},
			expected: url.Values{
				"start_datetime": []string{"2024-01-02T03:04:05Z"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values, err := tt.params.ToValues()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}
}
