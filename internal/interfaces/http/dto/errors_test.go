package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"SYNC_IN_PROGRESS", http.StatusConflict},
		{"INVALID_CRON", http.StatusBadRequest},
		{"INVALID_WEBHOOK_URL", http.StatusBadRequest},
		{"CREDENTIALS_NOT_SET", http.StatusUnprocessableEntity},
		{"TENANT_SUSPENDED", http.StatusUnprocessableEntity},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GetHTTPStatus(tc.code), tc.code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 7, 1, 3)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
