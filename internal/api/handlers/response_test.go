package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondConflict(w, "даты заняты")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "даты заняты", body.Error)
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	w := httptest.NewRecorder()

	RespondInternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Guests int `json:"guests"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"guests":2}`},
		{name: "unknown field", body: `{"guests":2,"total":1}`, wantErr: true},
		{name: "trailing object", body: `{"guests":2}{"guests":3}`, wantErr: true},
		{name: "broken json", body: `{"guests":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload

			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, p.Guests)
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": tt.raw})

			id, err := ParseID(r, "bookingId")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseOptionalQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?apartmentId=3&from=2025-03-01&status=pending", nil)

	id, err := ParseOptionalID(r, "apartmentId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)

	from, err := ParseOptionalDate(r, "from")
	require.NoError(t, err)
	require.NotNil(t, from)
	assert.Equal(t, "2025-03-01", from.Format("2006-01-02"))

	to, err := ParseOptionalDate(r, "to")
	require.NoError(t, err)
	assert.Nil(t, to)

	assert.Equal(t, "pending", *OptionalString(r, "status"))
	assert.Nil(t, OptionalString(r, "userId"))

	bad := httptest.NewRequest(http.MethodGet, "/?from=01.03.2025", nil)
	_, err = ParseOptionalDate(bad, "from")
	assert.ErrorIs(t, err, ErrInvalidParam)
}
