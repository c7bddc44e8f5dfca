package handler_test

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventrelay/handler"
)

func TestSSETransport_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"single line", `{"temp":21}`, `{"temp":21}`},
		{"pretty printed json", "{\n  \"temp\": 21\n}", "{\n  \"temp\": 21\n}"},
		{"blank line and fake fields", "a\n\nevent: fake\ndata: injected", "a\n\nevent: fake\ndata: injected"},
		{"trailing newline", "a\n", "a\n"},
		{"crlf and cr", "a\r\nb\rc", "a\nb\nc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			transport := handler.NewSSETransport(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
			require.NoError(t, transport.Send(tt.msg))

			wire := rec.Body.String()
			assert.Equal(t, 1, strings.Count("\n"+wire, "\nevent: "), "exactly one event on the wire: %q", wire)

			name, data := readEvent(t, bufio.NewReader(strings.NewReader(wire)))
			assert.Equal(t, handler.EventUpdate, name)
			assert.Equal(t, tt.want, data)
		})
	}
}
