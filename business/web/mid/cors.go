package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/ardanlabs/powchain/foundation/web"
)

// corsMethods lists the methods the node API answers to.
var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

// Cors sets the response headers needed for Cross-Origin Resource Sharing.
func Cors(origin string) web.Middleware {
	methods := strings.Join(corsMethods, ", ")

	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", "Origin, Accept, Content-Type, Content-Length, Accept-Encoding")

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
