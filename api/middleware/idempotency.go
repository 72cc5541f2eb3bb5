package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/omerfq/stitchline-backend/api/responses"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayHeader      = "X-Idempotent-Replay"

	pendingMarker  = "pending"
	idempotencyTTL = 24 * time.Hour
)

type storedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Requests without the header pass straight through. A key whose first
// request is still running is rejected rather than run twice.
func Idempotency(store redis.IdempotencyStore, scope string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			storageKey := store.IdempotencyKey(scope, key)

			acquired, err := store.SetNX(ctx, storageKey, pendingMarker, idempotencyTTL)
			if err != nil {
				responses.WriteError(ctx, w, logg, apperrors.Wrap(apperrors.CodeDependency, err, "idempotency store unavailable"))
				return
			}

			if !acquired {
				raw, err := store.Get(ctx, storageKey)
				if err != nil {
					responses.WriteError(ctx, w, logg, apperrors.Wrap(apperrors.CodeDependency, err, "idempotency store unavailable"))
					return
				}
				if raw == pendingMarker {
					responses.WriteError(ctx, w, logg, apperrors.New(apperrors.CodeIdempotency, "request with this key is still in flight"))
					return
				}

				var stored storedResponse
				if err := json.Unmarshal([]byte(raw), &stored); err != nil {
					responses.WriteError(ctx, w, logg, apperrors.Wrap(apperrors.CodeInternal, err, "corrupt idempotency record"))
					return
				}
				w.Header().Set(replayHeader, "true")
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			recorder := &recordingWriter{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			// 5xx responses release the key so the client can retry at once.
			if recorder.status >= http.StatusInternalServerError {
				if err := store.Del(ctx, storageKey); err != nil && logg != nil {
					logg.Warn(logg.WithField(ctx, "idempotency_key", key), "releasing idempotency key failed")
				}
				return
			}

			payload, err := json.Marshal(storedResponse{Status: recorder.status, Body: recorder.body.Bytes()})
			if err == nil {
				_ = store.Set(ctx, storageKey, string(payload), idempotencyTTL)
			}
		})
	}
}
