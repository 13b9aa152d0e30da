//
// options.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package readline

import (
	"go.uber.org/zap"

	"github.com/markkurossi/vtctl/lib/validate"
)

// Option configures a Readline.
type Option func(rl *Readline)

// WithAutoCommit selects the auto-commit mode: every operation is
// written to the stream immediately instead of being queued.
func WithAutoCommit(autoCommit bool) Option {
	return func(rl *Readline) {
		rl.autoCommit = autoCommit
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(rl *Readline) {
		if log != nil {
			rl.log = log
		}
	}
}

// ParseOptions converts loosely typed options, for example decoded
// JSON, into Options.
func ParseOptions(values map[string]interface{}) ([]Option, error) {
	var opts []Option

	if v, ok := values["autoCommit"]; ok && v != nil {
		b, err := validate.Boolean(v, "options.autoCommit")
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithAutoCommit(b))
	}
	return opts, nil
}
