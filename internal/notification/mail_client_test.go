package notification_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"krishr/internal/notification"

	"github.com/stretchr/testify/assert"
)

func TestMailClient_Send(t *testing.T) {
	t.Run("posts message with auth header and default from", func(t *testing.T) {
		var gotAuth string
		var gotMsg notification.Message

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := notification.NewMailClient(notification.MailClientConfig{
			BaseURL: srv.URL,
			APIKey:  "test-key",
			From:    "no-reply@kris.hr",
		})

		err := client.Send(context.Background(), notification.Message{
			To:      "jane@acme.test",
			Subject: "Welcome",
			HTML:    "<p>Hello</p>",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "no-reply@kris.hr", gotMsg.From)
		assert.Equal(t, "jane@acme.test", gotMsg.To)
	})

	t.Run("non-2xx from provider is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := notification.NewMailClient(notification.MailClientConfig{BaseURL: srv.URL})

		err := client.Send(context.Background(), notification.Message{To: "x@y.test"})
		assert.Error(t, err)
	})
}
