package agsapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namogange/pkg/ags"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Token: "secret", Timeout: 2 * time.Second, RetryCount: 2})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_ListPayments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/ags-payments", r.URL.Path)
		assert.Equal(t, "C1", r.URL.Query().Get("client_id"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data": []map[string]interface{}{
				{"id": 1, "client_id": "C1", "registration_no": "REG-001", "amount": "500",
					"payment_mode": "Cash", "payment_status": "Active"},
			},
		})
	})

	payments, err := c.ListPayments(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "REG-001", payments[0].RegistrationNo)
	assert.Equal(t, ags.ModeCash, payments[0].Mode)
	assert.True(t, payments[0].IsActive())
}

func TestClient_CreatePaymentSendsPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "U1", body["user_id"])
		assert.Equal(t, "AGS-2024-001", body["registration_no"])
		assert.Equal(t, "Seminar Only", body["payment_for"])
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"status": "success",
			"data":   map[string]interface{}{"id": 55, "registration_no": "AGS-2024-001", "payment_status": "Active"},
		})
	})

	p, err := c.CreatePayment(context.Background(), ags.Payload{
		Payment: ags.Payment{RegistrationNo: "AGS-2024-001", PaymentFor: ags.ForSeminarOnly, Status: ags.StatusActive},
		UserID:  "U1",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(55), p.ID)
}

func TestClient_PostIsNotRetried(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusBadGateway, map[string]string{"status": "error"})
	})

	_, err := c.CreatePayment(context.Background(), ags.Payload{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_GetIsRetriedOnServerError(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": []interface{}{}})
	})

	banks, err := c.ListBanks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, banks)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_ErrorMessageFromServer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status":  "error",
			"message": "Registration number already used",
		})
	})

	_, err := c.UpdatePayment(context.Background(), 9, ags.Payload{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Registration number already used", ags.ErrorMessage(err))
}

func TestClient_ErrorWithoutMessageFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "<html>bad request</html>")
	})

	_, err := c.DeletePayment(context.Background(), 3, "U1")
	require.Error(t, err)
	assert.Equal(t, ags.GenericErrorMessage, ags.ErrorMessage(err))
}

func TestClient_DeletePayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/ags-payments/3", r.URL.Path)
		assert.Equal(t, "U1", r.URL.Query().Get("user_id"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": map[string]int{"id": 3}})
	})

	id, err := c.DeletePayment(context.Background(), 3, "U1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
}

func TestClient_PreviewRegistrationNo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "For 2nd Day", r.URL.Query().Get("seminar_day"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data":   map[string]string{"registration_no": "AGS-2026-D2-004"},
		})
	})

	regNo, err := c.PreviewRegistrationNo(context.Background(), ags.Day2)
	require.NoError(t, err)
	assert.Equal(t, "AGS-2026-D2-004", regNo)
}

func TestClient_LogActivityIsAsync(t *testing.T) {
	received := make(chan ags.ActivityEvent, 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var event ags.ActivityEvent
		_ = json.NewDecoder(r.Body).Decode(&event)
		received <- event
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "success"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.LogActivity(ctx, ags.ActivityEvent{Module: "AGS Payment", Action: "create", UserID: "U1"})
	// 调用方的 ctx 取消不影响日志发送
	cancel()
	c.Wait()

	event := <-received
	assert.Equal(t, "create", event.Action)
}

func TestClient_LogActivityFailureIsSwallowed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
	})

	assert.NotPanics(t, func() {
		c.LogActivity(context.Background(), ags.ActivityEvent{Action: "delete"})
		c.Wait()
	})
}
