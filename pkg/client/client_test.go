package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data any, errMsg string) {
	body := map[string]any{
		"statusCode": status,
		"message":    message,
		"data":       data,
		"error":      nil,
	}
	if errMsg != "" {
		body["error"] = errMsg
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLoginStoresTokenInSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, "login successful", map[string]string{"accessToken": "tok-123"}, "")
	}))
	defer srv.Close()

	session := &Session{}
	c := New(srv.URL, session)
	require.False(t, session.IsAuthenticated())

	require.NoError(t, c.Login(context.Background(), "alice", "secret1"))
	require.True(t, session.IsAuthenticated())
	require.Equal(t, "tok-123", session.Token())

	session.Logout()
	require.False(t, session.IsAuthenticated())
}

func TestBearerAttachedWhenAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		// GET must not carry a JSON content-type
		require.Empty(t, r.Header.Get("Content-Type"))
		writeEnvelope(w, http.StatusOK, "products listed", map[string]any{"items": []any{}, "total": 0}, "")
	}))
	defer srv.Close()

	session := &Session{}
	session.Login("tok-123")
	c := New(srv.URL, session)

	page, err := c.Products(context.Background(), ProductQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(0), page.Total)
	require.Empty(t, page.Items)
}

func TestProductsQueryString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "foo", q.Get("search"))
		require.Equal(t, "price", q.Get("sortBy"))
		require.Equal(t, "desc", q.Get("sortOrder"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "5", q.Get("pageSize"))
		writeEnvelope(w, http.StatusOK, "products listed", map[string]any{"items": []any{}, "total": 0}, "")
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{})
	_, err := c.Products(context.Background(), ProductQuery{
		Search: "foo", SortBy: "price", SortOrder: "desc", Page: 2, PageSize: 5,
	})
	require.NoError(t, err)
}

func TestUnwrapReturnsDataOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "product found", map[string]any{
			"id": 3, "name": "Keyboard", "description": "d", "price": 49.99,
		}, "")
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{})
	prod, err := c.Product(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, uint(3), prod.ID)
	require.Equal(t, "Keyboard", prod.Name)
}

func TestTransportErrorUsesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "invalid credentials", nil, "invalid credentials")
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{})
	err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "invalid credentials", apiErr.Message)
	require.True(t, apiErr.Unauthorized())
}

func TestTransportErrorWithoutEnvelopeFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{})
	_, err := c.Product(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Contains(t, apiErr.Message, "502")
}

func TestSoftErrorInsideOKTransport(t *testing.T) {
	// the backend may signal a logical failure inside a 200 response;
	// callers must see the same error type as on a real error status
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": 404,
			"message":    "product not found",
			"data":       nil,
			"error":      "product not found",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{})
	_, err := c.Product(context.Background(), 99)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "product not found", apiErr.Message)
}

func TestUploadImageSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/upload", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "photo.jpg", header.Filename)

		writeEnvelope(w, http.StatusCreated, "image uploaded", map[string]string{
			"imageUrl": "/uploads/products/product-image-1-1.jpg",
		}, "")
	}))
	defer srv.Close()

	session := &Session{}
	session.Login("tok-123")
	c := New(srv.URL, session)

	url, err := c.UploadImage(context.Background(), "photo.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/products/product-image-1-1.jpg", url)
}

func TestDeleteProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/products/7", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "product deleted", nil, "")
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{})
	require.NoError(t, c.DeleteProduct(context.Background(), 7))
}
