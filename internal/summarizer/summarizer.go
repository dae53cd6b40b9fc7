package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

const minuteSummaryPrompt = `You are a meeting assistant. Summarize the following 1-minute transcript segment in a concise paragraph (50-100 words). Include key topics discussed. If provided, use the previous summaries to maintain context and continuity, but focus on the current segment.

Current 1-minute transcript: "%s"
Previous summaries (if any): "%s"`

const sessionSummaryPrompt = `You are a meeting assistant. Summarize the following full transcript in a concise paragraph (100-150 words). Use bullet points for key points if appropriate. Be specific, professional, and focus on the main topics discussed:

"%s"`

const titlePrompt = `Generate a short, relevant title (5-10 words) for this meeting based on the transcript and its summary. Ensure the title is concise and captures the main focus.

Transcript: "%s"
Summary: "%s"`

// priorContext bounds how many previous summaries feed the minute
// prompt, keeping prompt size flat as the session grows
const priorContext = 2

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reSpecials   = regexp.MustCompile(`[^\w\s.,!?]`)
)

func (s *implSummarizer) SummarizeMinute(ctx context.Context, segment string, prior []string) (string, error) {
	prev := "None"
	if len(prior) > priorContext {
		prior = prior[len(prior)-priorContext:]
	}
	if len(prior) > 0 {
		prev = strings.Join(prior, "\n")
	}

	prompt := fmt.Sprintf(minuteSummaryPrompt, cleanText(segment), prev)
	return s.generate(ctx, prompt)
}

func (s *implSummarizer) SummarizeSession(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(sessionSummaryPrompt, cleanText(transcript))
	return s.generate(ctx, prompt)
}

func (s *implSummarizer) TitleSession(ctx context.Context, transcript, summary string) (string, error) {
	prompt := fmt.Sprintf(titlePrompt, cleanText(transcript), summary)
	return s.generate(ctx, prompt)
}

// generate sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return strings.TrimSpace(text), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// cleanText normalizes whitespace and strips characters that tend to
// confuse transcript prompts
func cleanText(text string) string {
	text = reWhitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	return reSpecials.ReplaceAllString(text, "")
}
