package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"topreparateurs/internal/adapter/http/handlers/mocks"
	"topreparateurs/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestHoldHandler_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIHoldUseCase(ctrl)
	h := NewHoldHandler(uc)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	r := gin.New()
	r.POST("/v1/admin/holds/sweep", as(admin), h.Sweep)

	uc.EXPECT().ReleaseDue(gomock.Any(), now, 0).Return(usecase.SweepResult{Examined: 3, Released: 2, Skipped: 1}, nil)
	w := doJSON(r, http.MethodPost, "/v1/admin/holds/sweep", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decode(t, w); body["released"] != float64(2) || body["skipped"] != float64(1) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	uc.EXPECT().ReleaseDue(gomock.Any(), now, 10).Return(usecase.SweepResult{}, errors.New("dynamodb down"))
	if w := doJSON(r, http.MethodPost, "/v1/admin/holds/sweep", `{"limit":10}`); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodPost, "/v1/admin/holds/sweep", `{"limit":-1}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
