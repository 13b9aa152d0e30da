//
// httpd.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//
// WebSocket terminal control service.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/markkurossi/vtctl/lib/config"
	"github.com/markkurossi/vtctl/lib/log"
	"github.com/markkurossi/vtctl/lib/readline"
	"github.com/markkurossi/vtctl/lib/wsstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP service address")
	directory := flag.String("d", cfg.Dir,
		"Directory containing static content")
	autoCommit := flag.Bool("autocommit", cfg.AutoCommit,
		"Default auto-commit mode for sessions")
	flag.Parse()

	logger, err := log.New(cfg.Log())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	http.Handle("/term", &handler{
		log:        logger,
		autoCommit: *autoCommit,
	})
	http.Handle("/", http.FileServer(http.Dir(*directory)))

	logger.Info("serving",
		zap.String("dir", *directory), zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Fatal("listen failed", zap.Error(err))
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type handler struct {
	log        *zap.Logger
	autoCommit bool
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	session := wsstream.NewSession(ws, h.log,
		readline.WithAutoCommit(h.autoCommit))
	h.log.Info("new connection",
		zap.String("session", session.ID),
		zap.String("remote", r.RemoteAddr))

	session.Serve(context.Background())
}
