package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-flow/internal/document"
)

const suggestionPrompt = `You are an academic course recommender. Based on the provided meeting summary and relevant course content, suggest up to three relevant courses that align with the topics discussed. Each course suggestion should include a course name and a brief description (20-30 words) of how it relates to the summary.

Input:
- Meeting Summary: %s
- Course Content: %s

Instructions:
1. Analyze the summary and course content to identify relevant academic topics.
2. Suggest up to three courses with names and brief descriptions.
3. Output a JSON array of objects, each with "course_name" and "description" keys.
4. Ensure suggestions are precise, relevant, and based on the provided content.
5. If no relevant courses can be suggested, return an empty JSON array.
6. Do not include any explanations or extra text outside the JSON array.`

const retrieveK = 3

// Enrich reads the summary document at summaryPath, picks the most
// relevant summary (overall if present, otherwise the latest minute),
// and produces a suggestion record for it.
func (r *implRecommender) Enrich(ctx context.Context, summaryPath string) (document.EnrichmentResult, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	doc, err := document.LoadSummary(summaryPath)
	if err != nil {
		return document.EnrichmentResult{
			MeetingTime: -1,
			Error:       fmt.Sprintf("load summary: %v", err),
			Timestamp:   now,
		}, nil
	}

	summary, meetingTime, ok := pickSummary(doc)
	if !ok {
		return document.EnrichmentResult{}, fmt.Errorf("no summaries in %s", summaryPath)
	}

	var docs []string
	if r.catalog != nil {
		docs = r.catalog.Search(summary, retrieveK)
	}

	result := document.EnrichmentResult{
		Summary:            summary,
		MeetingTime:        meetingTime,
		RetrievedDocsCount: len(docs),
		Timestamp:          now,
	}

	suggestions, err := r.generateSuggestions(ctx, summary, docs)
	if err != nil {
		r.logger.Error(ctx, "Suggestion generation failed: %v", err)
		result.Error = err.Error()
		return result, nil
	}

	result.Suggestions = suggestions
	return result, nil
}

// pickSummary chooses the overall summary when the session has been
// finalized, otherwise the latest minute summary. Reports false when
// the document holds neither.
func pickSummary(doc document.SummaryDocument) (string, int, bool) {
	if doc.Overall.Summary != "" {
		return doc.Overall.Summary, 0, true
	}

	latest := doc.LatestMinute()
	if latest < 0 {
		return "", 0, false
	}
	for _, ms := range doc.MinuteSummaries {
		if ms.Minute == latest {
			return ms.Summary, latest, true
		}
	}
	return "", 0, false
}

func (r *implRecommender) generateSuggestions(ctx context.Context, summary string, docs []string) ([]document.Suggestion, error) {
	content := strings.ReplaceAll(strings.Join(docs, " "), "\n", " ")
	prompt := fmt.Sprintf(suggestionPrompt, summary, content)

	attempts := len(r.apiKeys)
	var lastErr error

	for range attempts {
		key := r.apiKeys[r.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			r.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				r.logger.Warn(ctx, "Key %d rate limited, rotating...", r.currentKey+1)
				r.rotateKey()
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("generate content: %w", err)
		}

		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return nil, fmt.Errorf("empty response from Gemini")
		}

		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return parseSuggestions(text)
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (r *implRecommender) rotateKey() {
	r.currentKey = (r.currentKey + 1) % len(r.apiKeys)
}

// parseSuggestions extracts the JSON array from the model output,
// tolerating markdown code fences around it
func parseSuggestions(text string) ([]document.Suggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var suggestions []document.Suggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}
	return suggestions, nil
}
