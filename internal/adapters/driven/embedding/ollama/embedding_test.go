package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestEmbedBatch_SendsAllInputs(t *testing.T) {
	var got embedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		resp := embedResponse{Embeddings: make([][]float64, len(got.Input))}
		for i := range resp.Embeddings {
			resp.Embeddings[i] = []float64{float64(i), 0.5}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL, Model: "all-minilm"})

	embeddings, err := svc.EmbedBatch(context.Background(),
		[]string{"first document", "second document"})

	require.NoError(t, err)
	assert.Equal(t, []string{"first document", "second document"}, got.Input)
	assert.Equal(t, "all-minilm", got.Model)

	// Response order is preserved
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{0, 0.5}, embeddings[0])
	assert.Equal(t, []float32{1, 0.5}, embeddings[1])
}

func TestEmbed_ReturnsSingleVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float64{{0.1, 0.2, 0.3}}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})

	vec, err := svc.Embed(context.Background(), "a question")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float64{{1}}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := svc.EmbedBatch(context.Background(), []string{"one", "two"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 embeddings for 2 inputs")
}

func TestEmbedBatch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := svc.EmbedBatch(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})

	assert.Error(t, svc.Ping(context.Background()))
}
