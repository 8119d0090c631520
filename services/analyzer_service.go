package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

// AnalyzerService talks to the SambaNova chat-completions API with a vision
// model. One blocking call per photo, no retries; a timeout surfaces as an
// error to the caller.
type AnalyzerService struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

func NewAnalyzerService() *AnalyzerService {
	baseURL := os.Getenv("SAMBANOVA_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.sambanova.ai/v1"
	}
	model := os.Getenv("SAMBANOVA_MODEL")
	if model == "" {
		model = "Llama-4-Maverick-17B-128E-Instruct"
	}
	return &AnalyzerService{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
		APIKey:  os.Getenv("SAMBANOVA_API_KEY"),
		Model:   model,
	}
}

type FoodEstimate struct {
	Name     string  `json:"name"`
	Portion  string  `json:"estimated_portion"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
}

// FoodAnalysis is the estimate a meal record is saved from. The core treats
// it as a trusted input apart from the non-negativity clamp.
type FoodAnalysis struct {
	DetectedFoods []string       `json:"detected_foods"`
	TotalCalories float64        `json:"total_calories"`
	TotalProteinG float64        `json:"total_protein_g"`
	Foods         []FoodEstimate `json:"foods"`
	NutrientNotes string         `json:"nutrient_notes"`
	Confidence    float64        `json:"confidence"`
	Source        string         `json:"source"` // "model" | "fallback"
	ImageID       string         `json:"image_id"`
}

const analysisPrompt = `Analyze this food photo and respond with VALID JSON ONLY.

Do NOT explain image processing or computer vision. ONLY analyze the food
in the photo and respond with JSON in exactly this format:
{
    "detected_foods": ["specific food name 1", "specific food name 2"],
    "total_calories": 450,
    "total_protein_g": 20,
    "foods": [
        {
            "name": "food name",
            "estimated_portion": "1 plate (200g)",
            "calories": 300,
            "protein_g": 15
        }
    ],
    "nutrient_notes": "short note on carbs, fat, fiber and sugar",
    "confidence": 0.8
}

Recognize Indonesian dishes specifically. Give realistic estimates.
RESPOND WITH ONLY THE JSON - NO EXPLANATIONS.`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzePhoto sends the photo to the vision model and parses the estimate.
// When the model answers with prose instead of JSON the deterministic
// fallback keyed on the image hash is returned, so the same photo always
// produces the same estimate.
func (s *AnalyzerService) AnalyzePhoto(ctx context.Context, image []byte, mimeType string) (*FoodAnalysis, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("SAMBANOVA_API_KEY not set")
	}

	imageID := imageHash(image)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	reqBody := chatRequest{
		Model: s.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []map[string]any{
				{"type": "text", "text": analysisPrompt},
				{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
			},
		}},
		MaxTokens:   1500,
		Temperature: 0.4,
		TopP:        0.9,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	analysis, ok := parseAnalysis(content)
	if !ok {
		fb := fallbackAnalysis(imageID)
		return fb, nil
	}

	sanitizeAnalysis(analysis)
	analysis.Source = "model"
	analysis.ImageID = imageID
	return analysis, nil
}

// DailyAdvice asks the model for a short evaluation of the day's meals.
// Advice is best effort: on any model failure a canned suggestion comes
// back instead of an error.
func (s *AnalyzerService) DailyAdvice(ctx context.Context, mealCount int, totalCalories float64, foods []string) string {
	const fallback = "Aim for balanced meals: plenty of vegetables and fruit, go easy on fried food, and drink enough water."

	if s.APIKey == "" {
		return fallback
	}

	prompt := fmt.Sprintf(
		"Daily nutrition summary:\n- Meals logged: %d\n- Estimated calories: %.0f kcal\n- Foods: %s\n\nGive a short evaluation and one suggestion for tomorrow. At most 150 words.",
		mealCount, totalCalories, strings.Join(foods, ", "),
	)

	content, err := s.complete(ctx, chatRequest{
		Model:       s.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   400,
		Temperature: 0.4,
		TopP:        0.9,
	})
	if err != nil || strings.TrimSpace(content) == "" {
		return fallback
	}
	return strings.TrimSpace(content)
}

func (s *AnalyzerService) complete(ctx context.Context, body chatRequest) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call analysis API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read analysis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analysis API error %d: %s", resp.StatusCode, string(respBody))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("failed to parse analysis response JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("analysis API returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseAnalysis pulls a FoodAnalysis out of whatever the model produced:
// clean JSON, JSON inside markdown fences, or JSON buried in prose.
func parseAnalysis(text string) (*FoodAnalysis, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "{") && strings.HasSuffix(cleaned, "}") {
		if a, ok := decodeAnalysis(cleaned); ok {
			return a, true
		}
	}

	if match := jsonObjectPattern.FindString(text); match != "" {
		if a, ok := decodeAnalysis(match); ok {
			return a, true
		}
	}

	return nil, false
}

func decodeAnalysis(raw string) (*FoodAnalysis, bool) {
	var a FoodAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, false
	}
	if len(a.DetectedFoods) == 0 || a.TotalCalories <= 0 {
		return nil, false
	}
	return &a, true
}

// sanitizeAnalysis clamps the estimate into the ranges the core relies on:
// non-negative nutrients, confidence in [0,1]. A missing protein figure is
// reconstructed from calories at 16% of energy (4 kcal per gram).
func sanitizeAnalysis(a *FoodAnalysis) {
	if a.TotalCalories < 0 {
		a.TotalCalories = 0
	}
	if a.TotalProteinG < 0 {
		a.TotalProteinG = 0
	}
	if a.TotalProteinG == 0 && a.TotalCalories > 0 {
		a.TotalProteinG = a.TotalCalories * 0.16 / 4.0
	}
	if a.Confidence <= 0 || a.Confidence > 1 {
		a.Confidence = 0.75
	}
	for i := range a.Foods {
		if a.Foods[i].Calories < 0 {
			a.Foods[i].Calories = 0
		}
		if a.Foods[i].ProteinG < 0 {
			a.Foods[i].ProteinG = 0
		}
	}
}

// fallbackCombos keeps the fallback deterministic per image: common meal
// combinations with realistic calorie totals.
var fallbackCombos = []struct {
	foods    [3]string
	calories float64
}{
	{[3]string{"Nasi putih", "Ayam goreng", "Sayur bayam"}, 580},
	{[3]string{"Gado-gado", "Kerupuk", "Es teh"}, 520},
	{[3]string{"Mie ayam", "Pangsit", "Es jeruk"}, 620},
	{[3]string{"Rendang", "Nasi putih", "Sayur asem"}, 720},
	{[3]string{"Soto ayam", "Nasi putih", "Emping"}, 480},
	{[3]string{"Gudeg", "Tahu bacem", "Telur"}, 650},
	{[3]string{"Pecel lele", "Nasi putih", "Sambal"}, 590},
}

func fallbackAnalysis(imageID string) *FoodAnalysis {
	var idx uint64
	fmt.Sscanf(imageID, "%x", &idx)
	combo := fallbackCombos[idx%uint64(len(fallbackCombos))]

	protein := combo.calories * 0.16 / 4.0
	portions := []string{"1 large portion", "1 medium portion", "1 small portion"}
	ratios := []float64{0.6, 0.3, 0.1}

	a := &FoodAnalysis{
		DetectedFoods: combo.foods[:],
		TotalCalories: combo.calories,
		TotalProteinG: protein,
		NutrientNotes: "Estimated without model output; treat as a rough guide.",
		Confidence:    0.5,
		Source:        "fallback",
		ImageID:       imageID,
	}
	for i, name := range combo.foods {
		a.Foods = append(a.Foods, FoodEstimate{
			Name:     name,
			Portion:  portions[i],
			Calories: combo.calories * ratios[i],
			ProteinG: protein * ratios[i],
		})
	}
	return a
}

func imageHash(image []byte) string {
	sum := md5.Sum(image)
	return fmt.Sprintf("%x", sum)[:8]
}
