package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"dscr-calculator/domain"
)

// AIService optionally rewrites the investor notes through an LLM for a more
// conversational tone. It is disabled unless an API key is configured; when
// disabled or on any API failure the deterministic notes are returned
// unchanged, so the calculation pipeline never depends on the network.
type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// EnhanceInvestorNotes returns AI-rewritten investor notes, or the supplied
// deterministic fallback when the service is disabled or the call fails.
func (s *AIService) EnhanceInvestorNotes(
	result *domain.CalculationResult,
	fallback string,
) string {
	if !s.enabled {
		return fallback
	}

	dscrText := "not applicable (cash purchase)"
	if result.DSCR != nil {
		dscrText = fmt.Sprintf("%.2f (%s)", *result.DSCR, result.RiskLabel)
	}

	prompt := fmt.Sprintf(`Rewrite these investment property notes for an investor evaluating a rental purchase.

PROPERTY CONTEXT:
- Address: %s
- Purchase price: $%.0f with $%.0f down (%.0f%%)
- Estimated monthly rent: $%.0f (confidence %.0f%%)
- Monthly debt service: $%.2f
- DSCR: %s
- Monthly cashflow: $%.2f
- Property tax: $%.2f/year (accuracy: %s)

NOTES TO REWRITE:
%s

INSTRUCTIONS:
1. Keep every warning and caveat from the notes; do not soften them.
2. Do not add numbers that are not in the context above.
3. Stay factual and conservative; this is not investment advice.

Write 4-5 plain sentences.`,
		result.Address, result.PurchasePrice, result.DownPaymentAmount,
		result.DownPaymentPercent*100, result.EstimatedMonthlyRent,
		result.ConfidenceScore*100, result.MonthlyDebtService, dscrText,
		result.MonthlyCashflow, result.PropertyTaxAnnual, result.TaxAccuracy,
		fallback)

	notes, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Warning: AI notes generation failed, using deterministic notes: %v", err)
		return fallback
	}
	return notes
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a conservative real-estate underwriting assistant. You explain DSCR calculations for residential investment properties in plain language. You never invent figures, never promise returns, and always preserve risk warnings verbatim in spirit.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
