package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

const searchPrompt = `You are a nutrition database. For the food "%s", respond with ONLY a JSON object, no prose, shaped as:
{"dishName": string, "ingredients": [{"name": string, "quantity": string, "calories": number, "protein": number, "carbs": number, "fat": number, "fiber": number, "sugar": number, "saturatedFat": number, "unsaturatedFat": number}]}
Quantities are human-readable servings like "100g" or "1 medium". Nutrient values are for the stated quantity, in grams except calories (kcal). Return an empty ingredients list if the text is not a food.`

type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiService initializes the GeminiService with credentials and HTTP client
func NewGeminiService() *GeminiService {
	base := os.Getenv("GEMINI_API_URL")
	if base == "" {
		base = defaultGeminiURL
	}
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: base,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// One candidate ingredient returned by the model. Nutrients are per the
// stated quantity.
type SearchIngredient struct {
	Name           string  `json:"name"`
	Quantity       string  `json:"quantity"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	Fiber          float64 `json:"fiber"`
	Sugar          float64 `json:"sugar"`
	SaturatedFat   float64 `json:"saturatedFat"`
	UnsaturatedFat float64 `json:"unsaturatedFat"`
}

// SearchResult is the parsed model output for one free-text query. An empty
// Ingredients list means no candidate was found.
type SearchResult struct {
	DishName    string             `json:"dishName"`
	Ingredients []SearchIngredient `json:"ingredients"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// SearchIngredient asks the model for nutrition data matching the free-text
// query and parses the JSON it returns.
func (s *GeminiService) SearchIngredient(ctx context.Context, query string) (*SearchResult, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(searchPrompt, query)}}},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Gemini payload: %w", err)
	}

	u := fmt.Sprintf("%s?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	text := stripCodeFence(gr.Candidates[0].Content.Parts[0].Text)

	var result SearchResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse ingredient JSON: %w", err)
	}
	return &result, nil
}

// stripCodeFence removes a ```json … ``` wrapper the model sometimes adds
// despite the prompt.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
