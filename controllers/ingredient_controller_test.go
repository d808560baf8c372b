package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flehn/flutter-edanos-sub001/services"

	"github.com/gin-gonic/gin"
)

// geminiStubServer wraps model output in the generateContent response shape.
func geminiStubServer(t *testing.T, status int, modelText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "upstream unhappy", status)
			return
		}
		wrapped, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": modelText}}}},
			},
		})
		w.Write(wrapped)
	}))
}

func newSearchRouter(t *testing.T, upstream string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("GEMINI_API_URL", upstream)
	t.Setenv("GEMINI_API_KEY", "test-key")

	ic := NewIngredientController(services.NewGeminiService())
	r := gin.New()
	r.Use(fakeAuth(7))
	r.GET("/ingredients/search", ic.Search)
	return r
}

func TestSearchSingleIngredientPreview(t *testing.T) {
	srv := geminiStubServer(t, http.StatusOK,
		`{"dishName":"Apple","ingredients":[{"name":"Apple","quantity":"1 medium","calories":95}]}`)
	defer srv.Close()
	r := newSearchRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodGet, "/ingredients/search?q=apple", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET search = %d, body %s", w.Code, w.Body.String())
	}

	display := decodeBody(t, w)["display"].(map[string]any)
	if display["title"] != "Apple" {
		t.Errorf("title = %v, want Apple", display["title"])
	}
	if display["subtitle"] != "per 1 medium" {
		t.Errorf("subtitle = %v, want per 1 medium", display["subtitle"])
	}
	if display["calories"] != "95 kcal" {
		t.Errorf("calories = %v, want 95 kcal", display["calories"])
	}
}

func TestSearchMultiIngredientPreview(t *testing.T) {
	srv := geminiStubServer(t, http.StatusOK,
		`{"dishName":"Salad","ingredients":[{"name":"Lettuce","quantity":"50g","calories":10},{"name":"Tomato","quantity":"80g","calories":20}]}`)
	defer srv.Close()
	r := newSearchRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodGet, "/ingredients/search?q=salad", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET search = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)

	display := body["display"].(map[string]any)
	if display["title"] != "Salad" || display["subtitle"] != "per 100g" {
		t.Errorf("display = %v, want Salad per 100g", display)
	}
	if display["calories"] != "30 kcal" {
		t.Errorf("calories = %v, want 30 kcal", display["calories"])
	}

	// the raw result still carries both ingredients for the confirmed add
	result := body["result"].(map[string]any)
	if got := len(result["ingredients"].([]any)); got != 2 {
		t.Errorf("result ingredients = %d, want 2", got)
	}
}

func TestSearchFailures(t *testing.T) {
	t.Run("upstream failure is 502", func(t *testing.T) {
		srv := geminiStubServer(t, http.StatusServiceUnavailable, "")
		defer srv.Close()
		r := newSearchRouter(t, srv.URL)

		w := doJSON(t, r, http.MethodGet, "/ingredients/search?q=salad", "")
		if w.Code != http.StatusBadGateway {
			t.Errorf("GET search = %d, want 502", w.Code)
		}
		if body := decodeBody(t, w); body["error"] == "" {
			t.Error("502 response should carry the upstream error message")
		}
	})

	t.Run("empty result is 404", func(t *testing.T) {
		srv := geminiStubServer(t, http.StatusOK, `{"dishName":"","ingredients":[]}`)
		defer srv.Close()
		r := newSearchRouter(t, srv.URL)

		if w := doJSON(t, r, http.MethodGet, "/ingredients/search?q=gibberish", ""); w.Code != http.StatusNotFound {
			t.Errorf("GET search = %d, want 404", w.Code)
		}
	})

	t.Run("missing query is 400", func(t *testing.T) {
		r := newSearchRouter(t, "http://unused.invalid")
		if w := doJSON(t, r, http.MethodGet, "/ingredients/search", ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET search = %d, want 400", w.Code)
		}
	})
}

type stubDetector struct {
	labels []string
	err    error
}

func (s stubDetector) RecognizeLabels(string) ([]string, error) {
	return s.labels, s.err
}

func newRecognizeRouter(t *testing.T, upstream string, detector LabelDetector) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("GEMINI_API_URL", upstream)
	t.Setenv("GEMINI_API_KEY", "test-key")

	mc := NewMealController(nil, services.NewMealHub(), services.NewGeminiService(), detector)
	r := gin.New()
	r.Use(fakeAuth(7))
	r.POST("/meals/recognize", mc.Recognize)
	return r
}

func TestRecognizeBuildsDraft(t *testing.T) {
	srv := geminiStubServer(t, http.StatusOK,
		`{"dishName":"Salad","ingredients":[{"name":"Lettuce","quantity":"50g","calories":10},{"name":"Tomato","quantity":"80g","calories":20}]}`)
	defer srv.Close()
	r := newRecognizeRouter(t, srv.URL, stubDetector{labels: []string{"Salad", "Food"}})

	w := doJSON(t, r, http.MethodPost, "/meals/recognize", `{"image_base64":"data:image/jpeg;base64,xxxx"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("POST recognize = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	meal := body["meal"].(map[string]any)
	if meal["name"] != "Salad" {
		t.Errorf("draft name = %v, want Salad", meal["name"])
	}
	if meal["id"] != "" {
		t.Errorf("draft id = %v, want empty (nothing persisted)", meal["id"])
	}
	if got := len(meal["ingredients"].([]any)); got != 2 {
		t.Errorf("draft ingredients = %d, want 2", got)
	}
}

func TestRecognizeNoLabels(t *testing.T) {
	r := newRecognizeRouter(t, "http://unused.invalid", stubDetector{})

	if w := doJSON(t, r, http.MethodPost, "/meals/recognize", `{"image_base64":"data:image/jpeg;base64,xxxx"}`); w.Code != http.StatusNotFound {
		t.Errorf("POST recognize = %d, want 404 when nothing is detected", w.Code)
	}
}
