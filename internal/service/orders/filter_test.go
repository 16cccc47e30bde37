package orders

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

func TestParseListFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		want    domain.OrderFilter
		wantErr string
	}{
		{name: "no filter", query: ""},
		{name: "status", query: "status=ready", want: domain.OrderFilter{Status: domain.OrderStatusReady}},
		{name: "table", query: "table_number=7", want: domain.OrderFilter{TableNumber: 7}},
		{name: "table with spaces", query: "table_number=+7+", want: domain.OrderFilter{TableNumber: 7}},
		{name: "both", query: "status=paid&table_number=1", wantErr: "use only one filter"},
		{name: "unknown key", query: "sort=asc&status=paid", wantErr: "unknown query parameters: sort"},
		{name: "unknown keys sorted", query: "z=1&a=2", wantErr: "unknown query parameters: a, z"},
		{name: "empty status", query: "status=", wantErr: "status must not be empty"},
		{name: "empty table", query: "table_number=", wantErr: "table_number must not be empty"},
		{name: "invalid status", query: "status=cooking", wantErr: "status must be one of"},
		{name: "non integer table", query: "table_number=abc", wantErr: "must be an integer"},
		{name: "float table", query: "table_number=1.5", wantErr: "must be an integer"},
		{name: "zero table", query: "table_number=0", wantErr: "greater than or equal to 1"},
		{name: "repeated key", query: "status=paid&status=ready", wantErr: "must be specified once"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseListFilter(values)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, domain.IsValidation(err))
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTableNumber(t *testing.T) {
	t.Parallel()

	table, err := ParseTableNumber(" 12 ")
	require.NoError(t, err)
	require.Equal(t, 12, table)

	for _, raw := range []string{"", "-1", "0", "x", "1e3"} {
		_, err := ParseTableNumber(raw)
		require.Error(t, err, raw)
		require.True(t, domain.IsValidation(err), raw)
	}
}
