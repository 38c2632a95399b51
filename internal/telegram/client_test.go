package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	client := NewClient("test-token")
	client.baseURL = serverURL
	client.maxRetryAttempts = 1
	return client
}

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotText = r.FormValue("text")
		assert.Equal(t, "123", r.FormValue("chat_id"))
		assert.Equal(t, "Markdown", r.FormValue("parse_mode"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.SendMessage(context.Background(), 123, "*hello*")
	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "*hello*", gotText)
}

func TestClient_SendMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	err := testClient(server.URL).SendMessage(context.Background(), 123, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_SendDocument(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("%PDF-1.4"), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "123", r.FormValue("chat_id"))
		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	err := testClient(server.URL).SendDocument(context.Background(), 123, filePath, "nightly report")
	require.NoError(t, err)
}

func TestClient_GetUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("offset"))
		assert.Equal(t, "30", r.URL.Query().Get("timeout"))
		w.Write([]byte(`{"ok":true,"result":[{"update_id":43,"message":{"message_id":1,"text":"/today","chat":{"id":123}}}]}`))
	}))
	defer server.Close()

	updates, err := testClient(server.URL).GetUpdates(context.Background(), 42, 30)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(43), updates[0].UpdateID)
	assert.Equal(t, "/today", updates[0].Message.Text)
	assert.Equal(t, int64(123), updates[0].Message.Chat.ID)
}

func TestClient_GetUpdates_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true,"result":[]}`))
	}))
	defer server.Close()

	updates, err := testClient(server.URL).GetUpdates(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Equal(t, 2, calls)
}

func TestClient_GetUpdates_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetUpdates(context.Background(), 0, 1)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
