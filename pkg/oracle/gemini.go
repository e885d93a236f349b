package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// EventIdea is a proposed event produced by the oracle or a local fallback
type EventIdea struct {
	Title           string
	Date            string
	Description     string
	Icon            string
	MaxParticipants int
	AIGenerated     bool
}

// Client calls the external generation service for event ideas and
// location suggestions. Every failure mode is absorbed into a usable
// deterministic fallback; no method ever fails its caller.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an oracle client. An empty apiKey puts the client in
// local fallback mode: no network call is ever attempted.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = models.DefaultModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// generateContent request/response shapes, trimmed to the fields we use
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var ideaSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING"},
		"date": {"type": "STRING"},
		"description": {"type": "STRING"},
		"icon": {"type": "STRING"},
		"maxParticipants": {"type": "INTEGER"}
	},
	"required": ["title", "date", "description", "icon", "maxParticipants"]
}`)

// GenerateEventIdeas proposes a title, date, description, icon and
// participant cap for a new event. With no credential configured it
// returns the deterministic local fallback without any network call; on
// any request, auth or parse failure it falls back the same way but
// picks an icon from a curated per-type pool to avoid collisions with
// icons already in use.
func (c *Client) GenerateEventIdeas(ctx context.Context, month string, eventType models.EventType, userProvidedName string, usedIcons []string) EventIdea {
	if c.apiKey == "" {
		log.Println("No generation credential configured, using local mode")
		return localIdea(month, eventType, userProvidedName,
			"Événement créé en mode local (IA non configurée).", "📅")
	}

	prompt := ideaPrompt(month, eventType, userProvidedName, usedIcons)

	raw, err := c.generate(ctx, prompt, ideaSchema)
	if err != nil {
		log.Printf("Idea generation failed: %v", err)
		return localIdea(month, eventType, userProvidedName,
			"Un événement généré faute de réponse de l'IA.",
			pickPoolIcon(eventType, usedIcons))
	}

	var idea struct {
		Title       string `json:"title"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := json.Unmarshal([]byte(raw), &idea); err != nil {
		log.Printf("Idea generation returned malformed JSON: %v", err)
		return localIdea(month, eventType, userProvidedName,
			"Un événement généré faute de réponse de l'IA.",
			pickPoolIcon(eventType, usedIcons))
	}

	if userProvidedName != "" {
		idea.Title = userProvidedName
	}

	// The participant cap is a fixed policy, not an oracle decision
	return EventIdea{
		Title:           idea.Title,
		Date:            idea.Date,
		Description:     idea.Description,
		Icon:            idea.Icon,
		MaxParticipants: models.DefaultMaxParticipants,
		AIGenerated:     true,
	}
}

// SuggestLocation proposes a physical location for an event. The map
// link is always constructed client-side from the suggested name. Any
// failure yields the fixed placeholder name instead of an error.
func (c *Client) SuggestLocation(ctx context.Context, title, month string) models.EventLocation {
	placeholder := models.EventLocation{Name: "Lieu à définir"}

	if c.apiKey == "" {
		return placeholder
	}

	prompt := fmt.Sprintf(`Propose un lieu précis pour l'événement "%s" en %s. `+
		`Réponds uniquement au format JSON pur avec un seul champ "name".`, title, month)

	schema := json.RawMessage(`{
		"type": "OBJECT",
		"properties": {"name": {"type": "STRING"}},
		"required": ["name"]
	}`)

	raw, err := c.generate(ctx, prompt, schema)
	if err != nil {
		log.Printf("Location suggestion failed: %v", err)
		return placeholder
	}

	var loc struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &loc); err != nil || loc.Name == "" {
		log.Printf("Location suggestion returned malformed JSON: %v", err)
		return placeholder
	}

	return models.EventLocation{
		Name:    loc.Name,
		MapsURI: models.MapsSearchURL(loc.Name),
	}
}

// generate issues one generateContent request and returns the text of
// the first candidate, with any markdown code fences stripped
func (c *Client) generate(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation request returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text), nil
}

func ideaPrompt(month string, eventType models.EventType, userProvidedName string, usedIcons []string) string {
	var b strings.Builder

	if userProvidedName != "" {
		fmt.Fprintf(&b, "L'utilisateur veut organiser un événement nommé %q pour le mois de %s de type %q. ", userProvidedName, month, eventType)
	} else {
		fmt.Fprintf(&b, "Génère une idée d'événement créative pour le mois de %s de type %q. ", month, eventType)
	}

	b.WriteString("Propose une date précise, une description attrayante (2 phrases max), un émoji unique, et un nombre de participants (4 par défaut). ")

	if len(usedIcons) > 0 {
		fmt.Fprintf(&b, "IMPORTANT : Ne choisis PAS un émoji parmi la liste suivante : %s. ", strings.Join(usedIcons, ", "))
	}

	b.WriteString("Réponds uniquement au format JSON pur.")
	return b.String()
}

// localIdea is the deterministic fallback used whenever the oracle
// cannot be consulted
func localIdea(month string, eventType models.EventType, userProvidedName, description, icon string) EventIdea {
	title := userProvidedName
	if title == "" {
		title = fmt.Sprintf("%s de %s", eventType, month)
	}
	return EventIdea{
		Title:           title,
		Date:            fmt.Sprintf("Le 15 %s", month),
		Description:     description,
		Icon:            icon,
		MaxParticipants: models.DefaultMaxParticipants,
		AIGenerated:     false,
	}
}

// pickPoolIcon picks the first icon from the type's curated pool that is
// not already in use, falling back to the type's neutral icon
func pickPoolIcon(eventType models.EventType, usedIcons []string) string {
	used := make(map[string]bool, len(usedIcons))
	for _, icon := range usedIcons {
		used[icon] = true
	}

	for _, icon := range models.IconPools[eventType] {
		if !used[icon] {
			return icon
		}
	}

	if icon, ok := models.TypeIcons[eventType]; ok {
		return icon
	}
	return "📅"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
