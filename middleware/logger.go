package middleware

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pthm/hxstore"
)

// Logger logs every action that passes through it together with the state
// before and after the rest of the chain ran.
func Logger[S any](logger *zap.Logger, level zapcore.Level) hxstore.Middleware[S] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(api hxstore.MiddlewareAPI[S]) func(hxstore.Dispatch) hxstore.Dispatch {
		return func(next hxstore.Dispatch) hxstore.Dispatch {
			return func(action hxstore.Action) any {
				ce := logger.Check(level, "dispatch")
				if ce == nil {
					return next(action)
				}

				prev := api.GetState()
				start := time.Now()
				result := next(action)

				ce.Write(
					zap.String("type", action.Type),
					zap.Any("payload", action.Payload),
					zap.Bool("error", action.IsError),
					zap.Any("prev", prev),
					zap.Any("next", api.GetState()),
					zap.Duration("took", time.Since(start)),
				)
				return result
			}
		}
	}
}
