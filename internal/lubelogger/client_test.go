package lubelogger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", "user", "pass")
	assert.Error(t, err)

	_, err = NewClient("https://lube.example.com", "", "pass")
	assert.Error(t, err)

	_, err = NewClient("https://lube.example.com", "user", "")
	assert.Error(t, err)

	client, err := NewClient("https://lube.example.com/", "user", "pass")
	require.NoError(t, err)
	assert.Equal(t, "https://lube.example.com", client.baseURL)
}

func TestGetFillups(t *testing.T) {
	fillups := []Fillup{
		{Date: "01/01/2024", Odometer: 1000, FuelConsumed: "40.52", Cost: "55.00", IsFillToFull: true},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/vehicle/gasrecords", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("vehicleId"))

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "user", username)
		assert.Equal(t, "pass", password)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(fillups))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "user", "pass")
	require.NoError(t, err)

	got, err := client.GetFillups(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, fillups, got)
}

func TestAddFillup(t *testing.T) {
	fillup := Fillup{Date: "01/01/2024", Odometer: 1000, FuelConsumed: "40.52", Cost: "55.00", IsFillToFull: true, Notes: "Fuel station: Shell"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/vehicle/gasrecords/add", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("vehicleId"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got Fillup
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, fillup, got)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "user", "pass")
	require.NoError(t, err)

	err = client.AddFillup(context.Background(), 3, fillup)

	assert.NoError(t, err)
}

func TestGetFillups_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "user", "wrong")
	require.NoError(t, err)

	_, err = client.GetFillups(context.Background(), 3)

	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestAddFillup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "user", "pass")
	require.NoError(t, err)

	err = client.AddFillup(context.Background(), 3, Fillup{Date: "01/01/2024"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "500")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vehicles", r.URL.Path)
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "user", "pass")
	require.NoError(t, err)

	assert.NoError(t, client.Ping(context.Background()))
}
