package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeandwifi/cafe-directory/internal/domain"
	"github.com/cafeandwifi/cafe-directory/internal/service"
)

type stubCafeService struct {
	randomFn func(ctx context.Context) (domain.Cafe, error)
	searchFn func(ctx context.Context, location string) (domain.Cafe, error)
}

func (s *stubCafeService) RandomCafe(ctx context.Context) (domain.Cafe, error) {
	return s.randomFn(ctx)
}

func (s *stubCafeService) SearchByLocation(ctx context.Context, location string) (domain.Cafe, error) {
	return s.searchFn(ctx, location)
}

func newTestRouter(svc CafeService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewCafeHandler(svc)
	router.GET("/random", handler.HandleGetRandomCafe)
	router.GET("/search", handler.HandleSearchCafes)

	return router
}

func sampleCafe() domain.Cafe {
	return domain.Cafe{
		ID:          7,
		Name:        "Brew & Bytes",
		MapURL:      "https://maps.example.com/brew-and-bytes",
		ImgURL:      "https://img.example.com/brew-and-bytes.jpg",
		Location:    "Peckham",
		Seats:       "20-30",
		HasWifi:     true,
		CoffeePrice: "£3.50",
	}
}

func TestHandleGetRandomCafe(t *testing.T) {
	t.Run("returns the cafe envelope", func(t *testing.T) {
		router := newTestRouter(&stubCafeService{
			randomFn: func(_ context.Context) (domain.Cafe, error) {
				return sampleCafe(), nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/random", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Contains(t, body, "cafe")
		assert.Equal(t, "Brew & Bytes", body["cafe"]["name"])
		assert.Equal(t, "£3.50", body["cafe"]["coffee_price"])
		assert.Equal(t, true, body["cafe"]["has_wifi"])
	})

	t.Run("empty directory is a 404", func(t *testing.T) {
		router := newTestRouter(&stubCafeService{
			randomFn: func(_ context.Context) (domain.Cafe, error) {
				return domain.Cafe{}, service.ErrNoCafes
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/random", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, service.ErrNoCafes.Error(), body["error"])
	})
}

func TestHandleSearchCafes(t *testing.T) {
	t.Run("hit returns the cafe envelope", func(t *testing.T) {
		router := newTestRouter(&stubCafeService{
			searchFn: func(_ context.Context, location string) (domain.Cafe, error) {
				assert.Equal(t, "Peckham", location)

				return sampleCafe(), nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?loc=Peckham", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Contains(t, body, "cafe")
		assert.Equal(t, "Peckham", body["cafe"]["location"])
	})

	t.Run("miss returns the structured not-found payload with 200", func(t *testing.T) {
		router := newTestRouter(&stubCafeService{
			searchFn: func(_ context.Context, _ string) (domain.Cafe, error) {
				return domain.Cafe{}, service.ErrCafeNotFound
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?loc=Atlantis", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Contains(t, body, "error")
		assert.Equal(t, "Sorry, we don't have a cafe at this location.", body["error"]["Not Found"])
	})
}
