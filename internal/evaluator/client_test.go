package evaluator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func TestClient_Evaluate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Beginner level developer")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Plant watering reminder")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("Here you go:\n" +
			`{"evaluation":"Doable","recommendations":"Keep it small","flowDiagram":"Login -> List",` +
			`"taskList":[{"id":1,"task":"Sketch screens","completed":false}]}`)))
	}))
	defer server.Close()

	client := New(Config{APIKey: "test-key", BaseURL: server.URL})
	res, err := client.Evaluate(context.Background(), "Plant watering reminder", domain.SkillBeginner)
	require.NoError(t, err)
	assert.Equal(t, "Doable", res.Evaluation)
	assert.Equal(t, "Keep it small", res.Recommendations)
	assert.Equal(t, "Login -> List", res.FlowDiagram)
	assert.Equal(t, []domain.Task{{ID: 1, Task: "Sketch screens"}}, res.TaskList)
}

func TestClient_Evaluate_CustomModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		w.Write([]byte(candidateBody(`{"evaluation":"ok"}`)))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL + "/", Model: "gemini-1.5-flash"})
	_, err := client.Evaluate(context.Background(), "idea", domain.SkillAdvanced)
	require.NoError(t, err)
}

func TestClient_Evaluate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"upstream error", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, "API key not valid"},
		{"server error without body", http.StatusInternalServerError, ``, "status 500"},
		{"empty candidates", http.StatusOK, `{"candidates":[]}`, "empty candidate list"},
		{"not JSON", http.StatusOK, `<html>`, "decode response"},
		{"unparsable text", http.StatusOK, candidateBody("I am unable to comply."), "no JSON object"},
		{"truncated text", http.StatusOK, candidateBody(`{"evaluation":"cut`), "no JSON object"},
		{"malformed object", http.StatusOK, candidateBody(`{"evaluation":"cut", "taskList": [}`), "decode response"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := New(Config{APIKey: "k", BaseURL: server.URL})
			res, err := client.Evaluate(context.Background(), "idea", domain.SkillBeginner)
			assert.Nil(t, res)
			require.ErrorIs(t, err, domain.ErrEvaluation)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestClient_Evaluate_TransportErrorHidesKey(t *testing.T) {
	client := New(Config{APIKey: "secret-key", BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := client.Evaluate(context.Background(), "idea", domain.SkillBeginner)
	require.ErrorIs(t, err, domain.ErrEvaluation)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestClient_Evaluate_RateLimited(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(candidateBody(`{"evaluation":"ok"}`)))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, RatePerMinute: 1})
	_, err := client.Evaluate(context.Background(), "idea", domain.SkillBeginner)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Evaluate(ctx, "idea", domain.SkillBeginner)
	assert.ErrorIs(t, err, domain.ErrEvaluation)
	assert.Equal(t, int32(1), calls.Load())
}
