package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberhq/calltriage/internal/api"
	"github.com/emberhq/calltriage/internal/capture"
	"github.com/emberhq/calltriage/internal/config"
	"github.com/emberhq/calltriage/internal/engine"
	"github.com/emberhq/calltriage/internal/engine/priority"
	"github.com/emberhq/calltriage/internal/logging"
	"github.com/emberhq/calltriage/internal/logstore"
	"github.com/emberhq/calltriage/internal/notify"
	"github.com/emberhq/calltriage/internal/translate"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logging.Init(cfg.Log.JSON, logging.ParseLevel(cfg.Log.Level))

	// The artifact pair is mandatory — the service cannot classify without it.
	classifier, err := priority.New(cfg.Model.Path, cfg.Model.VocabPath, cfg.Model.LabelsPath)
	if err != nil {
		log.Fatalf("failed to load priority classifier: %v", err)
	}
	defer classifier.Close()

	store, err := logstore.Open(cfg.Log.Path)
	if err != nil {
		log.Fatalf("failed to open event log: %v", err)
	}
	defer store.Close()

	translator := translate.New(cfg.Translate.Endpoint, cfg.Translate.APIKey,
		translate.WithTimeout(cfg.Translate.Timeout))

	// Alerts always go to the console; mail is added when configured.
	dispatchers := []notify.Dispatcher{notify.NewConsole(os.Stdout, false)}
	if cfg.MailEnabled() {
		d, err := notify.NewMail(cfg.Mail.Host, cfg.Mail.Port,
			cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.AlertTo)
		if err != nil {
			log.Fatalf("failed to create mail dispatcher: %v", err)
		}
		dispatchers = append(dispatchers, d)
	} else {
		slog.Warn("mail transport not configured, department alerts limited to console")
	}

	eng := engine.New(translator, classifier, notify.NewMulti(dispatchers...), store)

	// Voice input is optional — only wired when a recognizer endpoint exists.
	var listener api.Listener
	if cfg.Speech.Endpoint != "" {
		recorder, err := capture.NewRecorder(cfg.Speech.SampleRate)
		if err != nil {
			slog.Warn("microphone unavailable, voice input disabled", "error", err)
		} else {
			defer recorder.Close()
			transcriber := capture.NewHTTPTranscriber(cfg.Speech.Endpoint, cfg.Speech.APIKey)
			listener = capture.NewService(recorder, transcriber,
				cfg.Speech.SampleRate, cfg.Speech.ListenTimeout, cfg.Speech.PhraseLimit)
		}
	}

	router := api.NewRouter(eng, store, listener, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("calltriage listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("server shutdown failed: %v", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}
}
