package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"inn/shared/constant"
	"inn/shared/dto"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "explicit values",
			url:            "/api/bookings?page=3&limit=20&sort_by=created_at&sort_dir=asc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 3, Limit: 20, SortBy: "created_at", SortDir: "ASC"},
		},
		{
			name:           "defaults applied when missing",
			url:            "/api/bookings",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "no defaults when not requested",
			url:            "/api/bookings",
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			url:            "/api/bookings?page=abc&limit=-5",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid sort direction is ignored",
			url:            "/api/bookings?sort_dir=sideways",
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tt.url, nil)

			params := dto.QueryParams{}
			params.FromRequest(request, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}
