package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimBuster_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"results":[{"score":0.82}]}`))
	}))
	defer server.Close()

	creds := StaticCredentials{CredentialClaimBuster: "secret"}
	client := NewClaimBuster(server.URL+"/score/text/", creds, testOptions())

	result := client.Score(context.Background(), "unemployment fell to 3.4 percent last month")
	require.True(t, result.Available)
	assert.InDelta(t, 0.82, result.Score, 1e-9)
	assert.True(t, result.IsCheckWorthy)
	assert.Equal(t, "Highly check-worthy claim", result.Interpretation)
}

func TestClaimBuster_NoCredentialShortCircuits(t *testing.T) {
	client := NewClaimBuster("http://127.0.0.1:1", StaticCredentials{}, testOptions())

	result := client.Score(context.Background(), "some claim")
	assert.False(t, result.Available)
	assert.Equal(t, "No API key configured", result.Reason)
}

func TestClaimBuster_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	creds := StaticCredentials{CredentialClaimBuster: "k"}
	client := NewClaimBuster(server.URL+"/", creds, testOptions())

	result := client.Score(context.Background(), "claim")
	assert.True(t, result.Available)
	assert.False(t, result.IsCheckWorthy)
	assert.Equal(t, "No score returned", result.Reason)
}

func TestClaimBuster_ServerErrorFailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	creds := StaticCredentials{CredentialClaimBuster: "k"}
	client := NewClaimBuster(server.URL+"/", creds, testOptions())

	result := client.Score(context.Background(), "claim")
	assert.False(t, result.Available)
	assert.NotEmpty(t, result.Error)
}

func TestInterpretCheckWorthiness(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, "Highly check-worthy claim"},
		{0.6, "Moderately check-worthy"},
		{0.4, "Low priority for fact-checking"},
		{0.1, "Likely not a factual claim"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, interpretCheckWorthiness(tt.score))
	}
}
