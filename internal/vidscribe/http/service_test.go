package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoamihappyhacking/vidscribe/internal/model"
	"github.com/whoamihappyhacking/vidscribe/internal/vidscribe/conf"
)

type testConfig struct {
	format *conf.FormatConfig
	speech *conf.SpeechConfig
}

func (c *testConfig) GetHTTPAddr() string             { return "127.0.0.1:0" }
func (c *testConfig) GetTempDir() string              { return "" }
func (c *testConfig) GetYtDlpPath() string            { return "" }
func (c *testConfig) GetMaxDuration() time.Duration   { return 0 }
func (c *testConfig) GetPreferredLanguages() []string { return []string{"zh-CN", "zh", "en"} }
func (c *testConfig) GetFormat() *conf.FormatConfig   { return c.format }
func (c *testConfig) GetSpeech() *conf.SpeechConfig   { return c.speech }
func (c *testConfig) Public() *conf.Config {
	return &conf.Config{HTTPAddr: "127.0.0.1:0", Format: c.format, Speech: c.speech}
}

func newTestService() *Service {
	return NewService(&testConfig{
		format: &conf.FormatConfig{MinSentenceLength: 4},
		speech: &conf.SpeechConfig{Enabled: false},
	})
}

func doJSON(t *testing.T, s *Service, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, newTestService(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestFormat(t *testing.T) {
	s := newTestService()

	w := doJSON(t, s, http.MethodPost, "/api/v1/format", gin.H{
		"segments": []gin.H{
			{"text": "大家好今天我们来学习人工智能", "start": 0, "end": 5},
			{"text": "首先了解机器学习的基本概念", "start": 5, "end": 10},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result model.TranscriptResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, 2, result.SentenceCount)
	assert.Equal(t, "CJK", result.Language)
	assert.Equal(t, model.SourceCaller, result.Source)
	assert.True(t, result.Formatted)
	assert.Equal(t, "[00:00:00] 大家好，今天我们来学习人工智能。\n[00:00:05] 首先了解机器学习的基本概念。", result.TimestampedText)
	assert.Contains(t, result.ProcessingApplied, "punctuation added")
}

func TestFormat_BadInput(t *testing.T) {
	s := newTestService()

	t.Run("empty_segments", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/api/v1/format", gin.H{"segments": []gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed_segment", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/api/v1/format", gin.H{
			"segments": []gin.H{{"text": "hello", "start": 5, "end": 2}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "segment 0")
	})

	t.Run("invalid_json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/format", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.GetRouter().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFormat_Options(t *testing.T) {
	s := newTestService()

	w := doJSON(t, s, http.MethodPost, "/api/v1/format", gin.H{
		"segments":   []gin.H{{"text": "hello everyone welcome back", "start": 0, "end": 3}},
		"punctuate":  false,
		"timestamps": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result model.TranscriptResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.TimestampedText)
	assert.Equal(t, result.FormattedText, result.Transcript)
	assert.NotContains(t, result.ProcessingApplied, "punctuation added")
}

func TestTranscribe_SpeechDisabled(t *testing.T) {
	w := doJSON(t, newTestService(), http.MethodPost, "/api/v1/transcribe", gin.H{"url": "https://example.com/v"})
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestConfigEndpoint(t *testing.T) {
	w := doJSON(t, newTestService(), http.MethodGet, "/api/v1/config", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_addr")
}

func TestRequestID(t *testing.T) {
	w := doJSON(t, newTestService(), http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
