package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"vitalitygo/bmi"
	"vitalitygo/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Global Gemini client instance; nil when no API key is configured and
// the coach falls back to static tips.
var geminiClient *genai.Client

// InitCoachService initializes the Gemini client using the API key
// from the config. An empty key leaves the coach in fallback mode.
func InitCoachService(apiKey string) {
	if apiKey == "" {
		log.Println("Coach service running without Gemini API key, using fallback tips")
		return
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Failed to initialize Gemini client: %v", err)
		return
	}
	geminiClient = client
}

// GenerateCoachTip produces a short motivational tip tailored to the
// user's BMI category and pending missions. Any model failure degrades
// to a static tip rather than an error.
func GenerateCoachTip(ctx context.Context, category bmi.Category, group models.MissionGroup) string {
	pending := pendingMissionTitles(group)
	tip, err := generateTip(ctx, category, pending)
	if err != nil {
		log.Printf("Failed to generate coach tip: %v", err)
		return fallbackTip(category)
	}
	return tip
}

func pendingMissionTitles(group models.MissionGroup) []string {
	var titles []string
	for _, tier := range group.Tiers() {
		for _, m := range tier {
			if !m.Completed {
				titles = append(titles, m.Title)
			}
		}
	}
	return titles
}

func generateTip(ctx context.Context, category bmi.Category, pending []string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("Gemini client not initialized")
	}

	prompt := fmt.Sprintf(
		`You are a friendly fitness coach. The user's BMI category is %q.
Their pending missions are: %s.
Write one short motivational sentence (max 25 words) encouraging them to tackle the next mission. Return only the sentence.`,
		category, strings.Join(pending, "; "),
	)

	model := geminiClient.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil || len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response: %v", err)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text)), nil
		}
	}
	return "", errors.New("no text part in model response")
}

func fallbackTip(category bmi.Category) string {
	switch category {
	case bmi.Underweight:
		return "Small consistent steps build strength. A light walk and a glass of water get you going."
	case bmi.Overweight:
		return "Every run starts with a single stride. Lace up and chip away at today's distance."
	case bmi.Obese:
		return "Progress beats perfection. One mission at a time is all it takes."
	default:
		return "Keep the streak alive. A quick stretch and some water finish the day strong."
	}
}
