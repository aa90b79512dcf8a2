package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_AppliesDefaults(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:8960", 15*time.Second)

	require.NotNil(t, client.Client)
	assert.Equal(t, "http://127.0.0.1:8960", client.BaseURL)
	assert.Equal(t, 15*time.Second, client.GetClient().Timeout)
	assert.Equal(t, "application/json", client.Header.Get("Accept"))
}

func TestNewHTTPClient_Independence(t *testing.T) {
	first := NewHTTPClient("http://one.example", time.Second)
	second := NewHTTPClient("http://two.example", time.Second)

	require.NotSame(t, first.Client, second.Client)
	assert.Equal(t, "http://one.example", first.BaseURL)
	assert.Equal(t, "http://two.example", second.BaseURL)
}

func TestHTTPClient_RequestComposition(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:8960", time.Second)

	req := client.R()
	require.NotNil(t, req)
}
