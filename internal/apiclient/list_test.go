package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func TestDecodeListBareArray(t *testing.T) {
	body := []byte(`[{"id":1,"plate_number":"KAA 001A"},{"id":2,"plate_number":"KBB 002B"}]`)
	page, err := DecodeList[models.Truck](body)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, "KAA 001A", page.Items[0].PlateNumber)
}

func TestDecodeListEnvelope(t *testing.T) {
	body := []byte(`{"items":[{"id":5,"name":"Acme Ltd"}],"total":41,"page":2,"per_page":20,"pages":3}`)
	page, err := DecodeList[models.Customer](body)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(41), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
}

func TestDecodeListBothShapesSameItems(t *testing.T) {
	bare := []byte(`[{"id":1,"name":"Ayesha Noor","status":"active"}]`)
	enveloped := []byte(`{"items":[{"id":1,"name":"Ayesha Noor","status":"active"}],"total":1,"page":1,"per_page":50,"pages":1}`)

	a, err := DecodeList[models.Driver](bare)
	require.NoError(t, err)
	b, err := DecodeList[models.Driver](enveloped)
	require.NoError(t, err)
	assert.Equal(t, a.Items, b.Items)
	assert.Equal(t, a.Total, b.Total)
}

func TestDecodeListRejectsGarbage(t *testing.T) {
	_, err := DecodeList[models.Truck]([]byte(``))
	assert.Error(t, err)
	_, err = DecodeList[models.Truck]([]byte(`"nope"`))
	assert.Error(t, err)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	_, err := c.ListBranches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestDeliveryProofs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/9/documents/delivery-proof", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents":[{"id":1,"order_id":9,"kind":"delivery_proof","name":"pod.jpg","mime_type":"image/jpeg","download_url":"/api/documents/1/download"}],"total":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	docs, total, err := c.DeliveryProofs(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, docs, 1)
	assert.Equal(t, "pod.jpg", docs[0].Name)
}
