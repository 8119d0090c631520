package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleAnalysisJSON = `{
	"detected_foods": ["Nasi goreng", "Telur mata sapi"],
	"total_calories": 560,
	"total_protein_g": 22,
	"foods": [
		{"name": "Nasi goreng", "estimated_portion": "1 plate (300g)", "calories": 450, "protein_g": 12},
		{"name": "Telur mata sapi", "estimated_portion": "1 egg", "calories": 110, "protein_g": 10}
	],
	"nutrient_notes": "high in carbs, moderate fat",
	"confidence": 0.85
}`

func TestParseAnalysisDirectJSON(t *testing.T) {
	t.Parallel()

	a, ok := parseAnalysis(sampleAnalysisJSON)
	if !ok {
		t.Fatal("expected direct JSON to parse")
	}
	if len(a.DetectedFoods) != 2 || a.TotalCalories != 560 || a.TotalProteinG != 22 {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if len(a.Foods) != 2 || a.Foods[0].Name != "Nasi goreng" {
		t.Fatalf("unexpected per-food breakdown: %+v", a.Foods)
	}
}

func TestParseAnalysisMarkdownFenced(t *testing.T) {
	t.Parallel()

	fenced := "```json\n" + sampleAnalysisJSON + "\n```"
	a, ok := parseAnalysis(fenced)
	if !ok {
		t.Fatal("expected fenced JSON to parse")
	}
	if a.TotalCalories != 560 {
		t.Fatalf("expected 560 kcal, got %.1f", a.TotalCalories)
	}
}

func TestParseAnalysisEmbeddedInProse(t *testing.T) {
	t.Parallel()

	prose := "Here is the analysis you asked for:\n" + sampleAnalysisJSON + "\nHope that helps!"
	a, ok := parseAnalysis(prose)
	if !ok {
		t.Fatal("expected embedded JSON to parse")
	}
	if a.DetectedFoods[0] != "Nasi goreng" {
		t.Fatalf("unexpected detected food %q", a.DetectedFoods[0])
	}
}

func TestParseAnalysisRejectsProse(t *testing.T) {
	t.Parallel()

	cases := []string{
		"I cannot analyze images, I am a language model.",
		"",
		`{"detected_foods": [], "total_calories": 450}`, // no foods
		`{"detected_foods": ["x"], "total_calories": 0}`, // no calories
	}
	for _, text := range cases {
		if _, ok := parseAnalysis(text); ok {
			t.Fatalf("expected parse failure for %q", text)
		}
	}
}

func TestSanitizeClampsNegativesAndConfidence(t *testing.T) {
	t.Parallel()

	a := &FoodAnalysis{
		DetectedFoods: []string{"Soto ayam"},
		TotalCalories: 480,
		TotalProteinG: -5,
		Foods:         []FoodEstimate{{Name: "Soto ayam", Calories: -480, ProteinG: -5}},
		Confidence:    1.7,
	}
	sanitizeAnalysis(a)

	// protein was invalid, so it is reconstructed from calories (16% of
	// energy at 4 kcal/g)
	if want := 480 * 0.16 / 4.0; a.TotalProteinG != want {
		t.Fatalf("expected reconstructed protein %.2f, got %.2f", want, a.TotalProteinG)
	}
	if a.Foods[0].Calories != 0 || a.Foods[0].ProteinG != 0 {
		t.Fatalf("expected per-food negatives clamped to zero, got %+v", a.Foods[0])
	}
	if a.Confidence != 0.75 {
		t.Fatalf("expected confidence reset to 0.75, got %.2f", a.Confidence)
	}
}

func TestFallbackAnalysisIsDeterministic(t *testing.T) {
	t.Parallel()

	first := fallbackAnalysis("a1b2c3d4")
	second := fallbackAnalysis("a1b2c3d4")
	if first.DetectedFoods[0] != second.DetectedFoods[0] || first.TotalCalories != second.TotalCalories {
		t.Fatalf("fallback not deterministic: %v vs %v", first.DetectedFoods, second.DetectedFoods)
	}
	if first.Source != "fallback" {
		t.Fatalf("expected source fallback, got %q", first.Source)
	}
	if first.TotalCalories <= 0 || first.TotalProteinG <= 0 {
		t.Fatalf("fallback must carry positive estimates, got %.1f/%.1f",
			first.TotalCalories, first.TotalProteinG)
	}
	if len(first.Foods) != 3 {
		t.Fatalf("expected 3 fallback foods, got %d", len(first.Foods))
	}
}

func chatCompletionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func testAnalyzer(serverURL string, client *http.Client) *AnalyzerService {
	return &AnalyzerService{
		Client:  client,
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "test-model",
	}
}

func TestAnalyzePhotoUsesModelResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody(sampleAnalysisJSON)))
	}))
	defer srv.Close()

	svc := testAnalyzer(srv.URL, srv.Client())
	a, err := svc.AnalyzePhoto(context.Background(), []byte("fake-jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("analyze photo: %v", err)
	}
	if a.Source != "model" {
		t.Fatalf("expected source model, got %q", a.Source)
	}
	if a.TotalCalories != 560 || a.TotalProteinG != 22 {
		t.Fatalf("unexpected totals %.1f/%.1f", a.TotalCalories, a.TotalProteinG)
	}
	if len(a.ImageID) != 8 {
		t.Fatalf("expected 8-char image id, got %q", a.ImageID)
	}
}

func TestAnalyzePhotoFallsBackOnUnparseableAnswer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatCompletionBody("Image processing is a fascinating field of computer vision...")))
	}))
	defer srv.Close()

	svc := testAnalyzer(srv.URL, srv.Client())
	image := []byte("same-photo")

	a, err := svc.AnalyzePhoto(context.Background(), image, "image/jpeg")
	if err != nil {
		t.Fatalf("analyze photo: %v", err)
	}
	if a.Source != "fallback" {
		t.Fatalf("expected fallback, got %q", a.Source)
	}

	// the same photo must yield the same fallback estimate
	b, err := svc.AnalyzePhoto(context.Background(), image, "image/jpeg")
	if err != nil {
		t.Fatalf("analyze photo again: %v", err)
	}
	if a.TotalCalories != b.TotalCalories || a.DetectedFoods[0] != b.DetectedFoods[0] {
		t.Fatal("fallback estimates differ for the same photo")
	}
}

func TestAnalyzePhotoSurfacesAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := testAnalyzer(srv.URL, srv.Client())
	if _, err := svc.AnalyzePhoto(context.Background(), []byte("photo"), "image/jpeg"); err == nil {
		t.Fatal("expected error from failing API, got none")
	}
}

func TestAnalyzePhotoRequiresAPIKey(t *testing.T) {
	t.Parallel()

	svc := &AnalyzerService{Client: &http.Client{Timeout: time.Second}, BaseURL: "http://localhost:0", Model: "m"}
	if _, err := svc.AnalyzePhoto(context.Background(), []byte("photo"), "image/jpeg"); err == nil {
		t.Fatal("expected error without API key, got none")
	}
}

func TestDailyAdviceFallsBackOnAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := testAnalyzer(srv.URL, srv.Client())
	advice := svc.DailyAdvice(context.Background(), 2, 1100, []string{"Nasi goreng", "Soto ayam"})
	if strings.TrimSpace(advice) == "" {
		t.Fatal("expected fallback advice, got empty string")
	}
}
