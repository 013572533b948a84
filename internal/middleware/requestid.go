package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID はリクエストID用ヘッダー。ハンドラー側のログ相関にも使う。
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 1

// RequestID はクライアント提示のIDを尊重し、なければUUIDを振る。
// レスポンスにも返すので2段階ワークフローのチェック/エクスポートを突き合わせられる。
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			ctx := context.WithValue(r.Context(), requestIDKey, rid)
			w.Header().Set(HeaderRequestID, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(r *http.Request) string {
	if v := r.Context().Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}
