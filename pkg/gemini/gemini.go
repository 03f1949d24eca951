package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"inventario/internal/services"

	"github.com/guonaihong/gout"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// The model is asked for JSON only, but tends to wrap it in prose or code
// fences, so the first {...} block is extracted before parsing.
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

// Client calls the Gemini generateContent endpoint to derive a short
// description and a category from a product name. It implements the
// services.ProductEnricher port.
type Client struct {
	apiKey string
	model  string
}

// NewClient creates a new Gemini client for the given model, e.g.
// "gemini-2.5-flash".
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
	}
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Enrich asks the model for a description and category for the product name.
// It fails when the response carries no parseable JSON object of the agreed
// shape.
func (c *Client) Enrich(ctx context.Context, name string) (*services.Enrichment, error) {
	prompt := fmt.Sprintf(`Dame una descripción corta y una categoría adecuada
para un producto llamado %q.
RESPONDE SOLO JSON:

{
  "descripcion": "...",
  "categoria": "..."
}
`, name)

	var (
		resp generateResponse
		code int
	)
	err := gout.POST(fmt.Sprintf("%s/%s:generateContent", baseURL, c.model)).
		WithContext(ctx).
		SetQuery(gout.H{"key": c.apiKey}).
		SetJSON(gout.H{
			"contents": []gout.H{
				{"parts": []gout.H{{"text": prompt}}},
			},
		}).
		Code(&code).
		BindJSON(&resp).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("gemini request returned status %d", code)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response carried no candidates")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	raw := jsonBlock.FindString(text)
	if raw == "" {
		return nil, fmt.Errorf("gemini response carried no JSON object")
	}

	var payload struct {
		Descripcion string `json:"descripcion"`
		Categoria   string `json:"categoria"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("gemini response JSON is malformed: %w", err)
	}

	enrichment := &services.Enrichment{
		Description: payload.Descripcion,
		Category:    payload.Categoria,
	}
	if enrichment.Description == "" {
		enrichment.Description = payload.Description
	}
	if enrichment.Category == "" {
		enrichment.Category = payload.Category
	}
	if enrichment.Description == "" && enrichment.Category == "" {
		return nil, fmt.Errorf("gemini response JSON carried neither description nor category")
	}
	return enrichment, nil
}
