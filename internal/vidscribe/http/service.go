// Package http exposes the video analysis service over REST and MCP.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/whoamihappyhacking/vidscribe/internal/errors"
	"github.com/whoamihappyhacking/vidscribe/internal/media"
	"github.com/whoamihappyhacking/vidscribe/internal/speech"
	"github.com/whoamihappyhacking/vidscribe/internal/speech/openai"
	"github.com/whoamihappyhacking/vidscribe/internal/speech/whispercli"
	"github.com/whoamihappyhacking/vidscribe/internal/vidscribe/conf"
)

type Service struct {
	conf    Config
	fetcher *media.Fetcher

	speechMu   sync.RWMutex
	speech     speech.Transcriber
	speechOpts speech.Options
	speechCfg  *conf.SpeechConfig

	router *gin.Engine
	server *http.Server

	mcpServer           *server.MCPServer
	mcpSSEServer        *server.SSEServer
	mcpStreamableServer *server.StreamableHTTPServer
}

type Config interface {
	GetHTTPAddr() string
	GetTempDir() string
	GetYtDlpPath() string
	GetMaxDuration() time.Duration
	GetPreferredLanguages() []string
	GetFormat() *conf.FormatConfig
	GetSpeech() *conf.SpeechConfig
	Public() *conf.Config
}

func NewService(conf Config) *Service {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("Failed to set trusted proxies")
	}

	router.Use(
		errors.RecoveryMiddleware(),
		errors.ErrorHandlerMiddleware(),
		gin.LoggerWithWriter(log.Logger, "/health"),
		corsMiddleware(),
		requestIDMiddleware(),
	)

	s := &Service{
		conf:    conf,
		fetcher: media.NewFetcher(conf.GetYtDlpPath(), conf.GetTempDir()),
		router:  router,
	}

	s.initMCPServer()
	s.initRouter()
	s.initSpeech(conf)
	return s
}

func (s *Service) initSpeech(cfg Config) {
	speechCfg := cfg.GetSpeech()
	if speechCfg == nil || !speechCfg.Enabled {
		s.setSpeech(nil, speech.Options{}, nil)
		return
	}

	speechCfg.Normalize()

	var (
		backend speech.Transcriber
		err     error
	)
	switch speechCfg.Provider {
	case conf.ProviderOpenAI:
		backend, err = openai.New(openai.Config{
			APIKey:         speechCfg.APIKey,
			BaseURL:        speechCfg.BaseURL,
			Model:          speechCfg.Model,
			RequestTimeout: time.Duration(speechCfg.RequestTimeoutSeconds) * time.Second,
		})
	case conf.ProviderWhisperCLI:
		backend, err = whispercli.New(whispercli.Config{
			Binary: speechCfg.Binary,
			Model:  speechCfg.Model,
			Device: speechCfg.Device,
		})
	default:
		log.Warn().Str("provider", speechCfg.Provider).Msg("unsupported speech provider; speech transcription disabled")
		s.setSpeech(nil, speech.Options{}, nil)
		return
	}
	if err != nil {
		log.Err(err).Str("provider", speechCfg.Provider).Msg("failed to initialise speech backend")
		s.setSpeech(nil, speech.Options{}, nil)
		return
	}

	s.setSpeech(backend, speechCfg.ToOptions(), speechCfg)
	log.Info().Str("provider", speechCfg.Provider).Msg("speech backend ready")
}

func (s *Service) setSpeech(backend speech.Transcriber, opts speech.Options, cfg *conf.SpeechConfig) {
	s.speechMu.Lock()
	old := s.speech
	s.speech = backend
	s.speechOpts = opts
	s.speechCfg = cfg
	s.speechMu.Unlock()

	if old != nil && old != backend {
		old.Close()
	}
}

func (s *Service) transcriber() (speech.Transcriber, speech.Options) {
	s.speechMu.RLock()
	defer s.speechMu.RUnlock()
	return s.speech, s.speechOpts
}

// ReloadSpeech rebuilds the speech backend after a config change.
func (s *Service) ReloadSpeech() {
	s.initSpeech(s.conf)
}

func (s *Service) Start() error {
	s.server = &http.Server{
		Addr:    s.conf.GetHTTPAddr(),
		Handler: s.router,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Err(err).Msg("Failed to start HTTP server")
		}
	}()

	log.Info().Msg("Starting HTTP server on " + s.conf.GetHTTPAddr())

	return nil
}

func (s *Service) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    s.conf.GetHTTPAddr(),
		Handler: s.router,
	}

	log.Info().Msg("Starting HTTP server on " + s.conf.GetHTTPAddr())
	return s.server.ListenAndServe()
}

func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Debug().Err(err).Msg("Failed to shutdown HTTP server")
		return nil
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Service) GetRouter() *gin.Engine {
	return s.router
}
