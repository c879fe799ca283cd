package storefront_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderflow/internal/adapters/out/storefront"
	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTenant(t *testing.T) *tenant.Tenant {
	t.Helper()

	tn, err := tenant.NewTenant("tn-1", "ali-store.myshopify.com", "Ali Store", "92")
	require.NoError(t, err)

	return tn
}

func TestClient_UpdateOrderNote(t *testing.T) {
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/api/2024-01/orders/ord-1.json", r.URL.Path)
		assert.Equal(t, "shptoken", r.Header.Get("X-Shopify-Access-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order":{"id":"ord-1"}}`))
	}))
	defer srv.Close()

	client := storefront.NewClient(srv.URL)

	err := client.UpdateOrderNote(t.Context(), testTenant(t),
		&tenant.Secrets{PlatformToken: "shptoken"},
		"ord-1", "Order confirmed by customer over WhatsApp")
	require.NoError(t, err)

	orderBody := captured["order"].(map[string]any)
	assert.Equal(t, "ord-1", orderBody["id"])
	assert.Equal(t, "Order confirmed by customer over WhatsApp", orderBody["note"])
}

func TestClient_UpdateOrderNote_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":"invalid api key"}`))
	}))
	defer srv.Close()

	client := storefront.NewClient(srv.URL)

	err := client.UpdateOrderNote(t.Context(), testTenant(t),
		&tenant.Secrets{PlatformToken: "stale"}, "ord-1", "note")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClient_UpdateOrderNote_MissingToken(t *testing.T) {
	client := storefront.NewClient("")

	err := client.UpdateOrderNote(t.Context(), testTenant(t),
		&tenant.Secrets{}, "ord-1", "note")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
