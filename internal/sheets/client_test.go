package sheets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFormSendsEncodedBody(t *testing.T) {
	var gotMethod, gotType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), Endpoints{SubmitURL: server.URL})
	values := url.Values{"name": {"Alice"}, "email": {"a@x.com"}}

	code, err := client.PostForm(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/x-www-form-urlencoded", gotType)
	assert.Equal(t, "email=a%40x.com&name=Alice", gotBody)
}

func TestPostFormNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "script failed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), Endpoints{SubmitURL: server.URL})
	code, err := client.PostForm(context.Background(), url.Values{})

	assert.Equal(t, http.StatusInternalServerError, code)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "script failed", statusErr.Body)
	assert.NotContains(t, err.Error(), server.URL)
}

func TestPostFormTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	client := NewClient(nil, Endpoints{SubmitURL: target})
	code, err := client.PostForm(context.Background(), url.Values{})

	require.Error(t, err)
	assert.Equal(t, 0, code)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestPostFormWithoutURL(t *testing.T) {
	client := NewClient(nil, Endpoints{})
	_, err := client.PostForm(context.Background(), url.Values{})
	assert.Error(t, err)
}

func TestFetchAllAttachesAction(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[1,2,3]}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), Endpoints{FetchURL: server.URL + "/exec?sheet=Contacts", AttachAction: true})
	data, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "getAllData", gotQuery.Get("action"))
	assert.Equal(t, "Contacts", gotQuery.Get("sheet"))
	assert.Equal(t, map[string]any{"rows": []any{1.0, 2.0, 3.0}}, data)
}

func TestFetchAllWithoutAction(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), Endpoints{FetchURL: server.URL})
	data, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", rawQuery)
	assert.Equal(t, []any{}, data)
}

func TestFetchAllErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  bool
	}{
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			status: true,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>not json</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.Client(), Endpoints{FetchURL: server.URL, AttachAction: true})
			data, err := client.FetchAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, data)

			var statusErr *StatusError
			assert.Equal(t, tt.status, errors.As(err, &statusErr))
		})
	}
}

func TestSetEndpoints(t *testing.T) {
	client := NewClient(nil, Endpoints{SubmitURL: "https://a.example/exec"})
	client.SetEndpoints(Endpoints{SubmitURL: "https://b.example/exec", AttachAction: true})
	assert.Equal(t, Endpoints{SubmitURL: "https://b.example/exec", AttachAction: true}, client.Endpoints())
}
