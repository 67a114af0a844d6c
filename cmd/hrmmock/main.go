package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"hrm-qa/internal/hrmmock"
)

func main() {
	var (
		addr     = flag.String("addr", ":8081", "Listen address")
		username = flag.String("username", hrmmock.DefaultUsername, "Accepted login user name")
		password = flag.String("password", hrmmock.DefaultPassword, "Accepted login password")
		cookie   = flag.String("cookie-name", hrmmock.DefaultCookieName, "Session cookie name")
	)
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	m := hrmmock.New(hrmmock.Options{Username: *username, Password: *password, CookieName: *cookie, Log: log})
	srv := &http.Server{Addr: *addr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("hrmmock listening", zap.String("addr", *addr), zap.String("login", hrmmock.LoginPath))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}
