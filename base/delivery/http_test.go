package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/nftcarousel/domain"
)

func TestMakeJsonResp(t *testing.T) {
	e := echo.New()
	tests := []struct {
		name       string
		status     int
		data       interface{}
		wantStatus int
		wantResp   JsonResponse
	}{
		{"ok", http.StatusOK, "value", http.StatusOK, JsonResponse{"value", JsonResponseStatusSuccess}},
		{"not found", http.StatusInternalServerError, xerrors.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound, JsonResponse{"lookup: " + domain.ErrNotFound.Error(), JsonResponseStatusFail}},
		{"bad input", http.StatusInternalServerError, domain.ErrUnsupportedChain, http.StatusBadRequest, JsonResponse{domain.ErrUnsupportedChain.Error(), JsonResponseStatusFail}},
		{"other", http.StatusInternalServerError, errors.New("boom"), http.StatusInternalServerError, JsonResponse{"boom", JsonResponseStatusFail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			req.NoError(MakeJsonResp(c, tt.status, tt.data))
			req.Equal(tt.wantStatus, rec.Code)

			resp := JsonResponse{}
			req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			req.Equal(tt.wantResp, resp)
		})
	}
}
