package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

func TestSplitCustomerCode(t *testing.T) {
	cases := []struct {
		combined string
		prefix   string
		code     string
	}{
		{"GG0042", "GG", "0042"},
		{"AVI0042", "AVI", "0042"},
		{"A7", "A", "7"},
		{"0042", "", "0042"},
		{"GG", "GG", ""},
		{"  GG0042  ", "GG", "0042"},
		{"", "", ""},
	}
	for _, tc := range cases {
		prefix, code := model.SplitCustomerCode(tc.combined)
		assert.Equal(t, tc.prefix, prefix, tc.combined)
		assert.Equal(t, tc.code, code, tc.combined)
	}
}

func TestCustomerFullCode(t *testing.T) {
	customer := model.Customer{Prefix: "GG", Code: "0042"}
	assert.Equal(t, "GG0042", customer.FullCode())
}
