package oracle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

// fakeGenerator serves a canned generateContent response carrying text
func fakeGenerator(t *testing.T, text string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerateEventIdeasWithoutCredential(t *testing.T) {
	client := NewClient("", "")

	idea := client.GenerateEventIdeas(context.Background(), "Mars", models.TypeAnniversaire, "", nil)

	assert.Equal(t, "Anniversaire de Mars", idea.Title)
	assert.Equal(t, "Le 15 Mars", idea.Date)
	assert.Equal(t, "📅", idea.Icon)
	assert.Equal(t, "Événement créé en mode local (IA non configurée).", idea.Description)
	assert.Equal(t, models.DefaultMaxParticipants, idea.MaxParticipants)
	assert.False(t, idea.AIGenerated)
}

func TestGenerateEventIdeasWithoutCredentialUsesProvidedName(t *testing.T) {
	client := NewClient("", "")

	idea := client.GenerateEventIdeas(context.Background(), "Juin", models.TypeSoiree, "Fête de la musique", nil)

	assert.Equal(t, "Fête de la musique", idea.Title)
	assert.Equal(t, "Le 15 Juin", idea.Date)
	assert.False(t, idea.AIGenerated)
}

func TestGenerateEventIdeasSuccess(t *testing.T) {
	// The model wraps its JSON in markdown fences; they must be stripped
	server := fakeGenerator(t, "```json\n"+`{
		"title": "Chasse aux œufs géante",
		"date": "Le 6 Avril",
		"description": "Une matinée dans le parc.",
		"icon": "🐰",
		"maxParticipants": 12
	}`+"\n```")

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	idea := client.GenerateEventIdeas(context.Background(), "Avril", models.TypeJournee, "", nil)

	assert.Equal(t, "Chasse aux œufs géante", idea.Title)
	assert.Equal(t, "Le 6 Avril", idea.Date)
	assert.Equal(t, "🐰", idea.Icon)
	// The cap is fixed policy, whatever the model answered
	assert.Equal(t, models.DefaultMaxParticipants, idea.MaxParticipants)
	assert.True(t, idea.AIGenerated)
}

func TestGenerateEventIdeasSuccessKeepsProvidedName(t *testing.T) {
	server := fakeGenerator(t, `{"title":"Autre chose","date":"Le 6 Avril","description":"x","icon":"🐰"}`)

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	idea := client.GenerateEventIdeas(context.Background(), "Avril", models.TypeJournee, "Mon pique-nique", nil)

	assert.Equal(t, "Mon pique-nique", idea.Title)
	assert.True(t, idea.AIGenerated)
}

func TestGenerateEventIdeasFailureFallsBackWithPoolIcon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	// The pool's first two birthday icons are taken already
	used := []string{"🎂", "🎉"}
	idea := client.GenerateEventIdeas(context.Background(), "Mai", models.TypeAnniversaire, "", used)

	assert.Equal(t, "Anniversaire de Mai", idea.Title)
	assert.Equal(t, "Le 15 Mai", idea.Date)
	assert.Equal(t, "Un événement généré faute de réponse de l'IA.", idea.Description)
	assert.Equal(t, "🎈", idea.Icon)
	assert.False(t, idea.AIGenerated)
}

func TestGenerateEventIdeasMalformedAnswerFallsBack(t *testing.T) {
	server := fakeGenerator(t, "désolé, je ne peux pas répondre en JSON")

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	idea := client.GenerateEventIdeas(context.Background(), "Mai", models.TypeVacances, "", nil)

	assert.Equal(t, "Vacances de Mai", idea.Title)
	assert.False(t, idea.AIGenerated)
}

func TestGenerateEventIdeasPromptCarriesExclusions(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		prompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]any{{"text": `{"title":"T","date":"D","description":"x","icon":"🎨"}`}},
				}},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	client.GenerateEventIdeas(context.Background(), "Mai", models.TypeActivite, "", []string{"🏃", "🚴"})

	assert.True(t, strings.Contains(prompt, "🏃"))
	assert.True(t, strings.Contains(prompt, "🚴"))
}

func TestSuggestLocationWithoutCredential(t *testing.T) {
	client := NewClient("", "")

	loc := client.SuggestLocation(context.Background(), "Pique-nique", "Juin")

	assert.Equal(t, "Lieu à définir", loc.Name)
	assert.Empty(t, loc.MapsURI)
}

func TestSuggestLocationSuccessBuildsMapLink(t *testing.T) {
	server := fakeGenerator(t, `{"name": "Parc de la Tête d'Or"}`)

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	loc := client.SuggestLocation(context.Background(), "Pique-nique", "Juin")

	assert.Equal(t, "Parc de la Tête d'Or", loc.Name)
	assert.Equal(t, models.MapsSearchURL("Parc de la Tête d'Or"), loc.MapsURI)
}

func TestSuggestLocationFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", "")
	client.baseURL = server.URL

	loc := client.SuggestLocation(context.Background(), "Pique-nique", "Juin")
	assert.Equal(t, "Lieu à définir", loc.Name)
}

func TestPickPoolIconExhaustedPool(t *testing.T) {
	used := append([]string{}, models.IconPools[models.TypeSoiree]...)
	icon := pickPoolIcon(models.TypeSoiree, used)
	assert.Equal(t, models.TypeIcons[models.TypeSoiree], icon)
}
