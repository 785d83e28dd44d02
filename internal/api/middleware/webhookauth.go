package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
)

// HeaderWebhookSecret authenticates chatbot webhook calls.
const HeaderWebhookSecret = "X-Webhook-Secret"

const msgInvalidWebhookSecret = "segredo de webhook inválido"

// WebhookAuth rejects chatbot requests whose X-Webhook-Secret header does not
// match the configured secret. An empty configured secret disables the check,
// which is only sensible in local development.
func WebhookAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				got := r.Header.Get(HeaderWebhookSecret)
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					handlers.RespondForbidden(w, msgInvalidWebhookSecret)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
