//
// session.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package wsstream

import (
	"bytes"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/markkurossi/vtctl/lib/readline"
	"github.com/markkurossi/vtctl/lib/script"
	"github.com/markkurossi/vtctl/lib/validate"
)

// Session runs client scripts against a controller writing to the
// client connection.
type Session struct {
	ID       string
	conn     *Conn
	log      *zap.Logger
	defaults []readline.Option
	runner   *script.Runner
	output   bytes.Buffer
}

// NewSession creates a session for the connection. The defaults are
// applied before the options of the first request.
func NewSession(ws *websocket.Conn, log *zap.Logger,
	defaults ...readline.Option) *Session {

	id := uuid.New().String()
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ID:       id,
		conn:     NewConn(ws),
		log:      log.With(zap.String("session", id)),
		defaults: defaults,
	}
}

// Serve reads requests until the connection closes or ctx is done.
// Canceling ctx closes the connection.
func (s *Session) Serve(ctx context.Context) error {
	defer s.conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Unblock ReadJSON.
			s.conn.ws.Close()
		case <-stop:
		}
	}()

	s.log.Info("session started")
	for {
		var req Request
		if err := s.conn.ws.ReadJSON(&req); err != nil {
			if ctx.Err() != nil {
				s.log.Info("session canceled")
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure,
				websocket.CloseGoingAway) {
				s.log.Info("session closed")
				return nil
			}
			s.log.Warn("read failed", zap.Error(err))
			return err
		}
		status := s.handle(ctx, &req)
		if err := s.conn.WriteStatus(status); err != nil {
			s.log.Warn("status write failed", zap.Error(err))
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *Session) handle(ctx context.Context, req *Request) Status {
	status := Status{
		ID: s.ID,
	}
	if s.runner == nil {
		opts, err := readline.ParseOptions(req.Options)
		if err != nil {
			return fail(status, err)
		}
		all := []readline.Option{readline.WithLogger(s.log)}
		all = append(all, s.defaults...)
		all = append(all, opts...)
		rl, err := readline.New(s.conn, all...)
		if err != nil {
			return fail(status, err)
		}
		s.runner = script.NewRunner(rl, &s.output, s.log)
	}

	s.output.Reset()
	for _, line := range req.Script {
		if err := s.runner.Exec(ctx, line); err != nil {
			s.log.Debug("script failed", zap.String("line", line),
				zap.Error(err))
			status.Output = s.output.String()
			return fail(status, err)
		}
	}
	status.Success = true
	status.Output = s.output.String()
	return status
}

func fail(status Status, err error) Status {
	status.Success = false
	status.Error = err.Error()
	status.Code = validate.Code(err)
	if status.Code == "" && errors.Is(err, script.ErrUnknownCommand) {
		status.Code = "ERR_UNKNOWN_COMMAND"
	}
	return status
}
