// Package genai wraps the hosted generative service behind narrow
// request/response contracts: lesson generation, chat turns, speech
// synthesis and translation.
package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"linguastory-backend/internal/config"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
)

type Client struct {
	baseURL     string
	apiKey      string
	textModel   string
	speechModel string
	voice       string
	temperature float64
	client      *http.Client
	log         *logging.Logger
}

func NewClient(cfg config.GenAIConfig, apiKey string, log *logging.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      apiKey,
		textModel:   cfg.TextModel,
		speechModel: cfg.SpeechModel,
		voice:       cfg.Voice,
		temperature: cfg.Temperature,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		log: log,
	}
}

// --- wire types ---

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature        float64       `json:"temperature,omitempty"`
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema       `json:"responseSchema,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoice `json:"prebuiltVoiceConfig"`
}

type prebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r *generateResponse) text() string {
	var b strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		break
	}
	return b.String()
}

// --- plumbing ---

func (c *Client) endpoint(modelName, verb string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s", c.baseURL, modelName, verb)
}

func (c *Client) call(ctx context.Context, modelName string, reqBody generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(modelName, "generateContent"), bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("provider returned HTTP %d: %s", resp.StatusCode, string(snippet))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out generateResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// GenerateLesson asks the provider for a structured lesson and validates the
// shape at the boundary. Any network, parse or shape failure comes back
// wrapped in ErrGeneration.
func (c *Client) GenerateLesson(ctx context.Context, params model.LessonParams) (*model.Lesson, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: lessonPrompt(params)}}}},
		GenerationConfig: &generationConfig{
			Temperature:      c.temperature,
			ResponseMimeType: "application/json",
			ResponseSchema:   lessonSchema,
		},
	}

	resp, err := c.call(ctx, c.textModel, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := resp.text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGeneration)
	}

	var lesson model.Lesson
	if err := json.Unmarshal([]byte(text), &lesson); err != nil {
		return nil, fmt.Errorf("%w: parse lesson: %v", ErrGeneration, err)
	}
	if err := ValidateLesson(&lesson); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return &lesson, nil
}

// StreamChat sends one conversational turn and feeds text deltas to onDelta
// as they arrive. The returned string is the full accumulated reply. The
// framing string is composed once per session by the caller.
func (c *Client) StreamChat(ctx context.Context, framing string, history []model.ChatMessage, message string, onDelta func(delta string)) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, content{
			Role:  string(msg.Role),
			Parts: []part{{Text: msg.Text}},
		})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: message}}})

	req := generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: framing}}},
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: marshal: %v", ErrChatTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(c.textModel, "streamGenerateContent")+"?alt=sse", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatTransport, err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrChatTransport, resp.StatusCode)
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return full.String(), fmt.Errorf("%w: %v", ErrChatTransport, ctx.Err())
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			c.log.Warnw("skipping malformed stream chunk", "err", err)
			continue
		}
		if delta := chunk.text(); delta != "" {
			full.WriteString(delta)
			if onDelta != nil {
				onDelta(delta)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("%w: %v", ErrChatTransport, err)
	}

	return full.String(), nil
}

// SynthesizeSpeech returns a base64 payload of 16-bit little-endian mono PCM
// at 24 kHz, the fixed wire contract with the speech model.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoice{VoiceName: c.voice},
				},
			},
		},
	}

	resp, err := c.call(ctx, c.speechModel, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSpeechSynthesis, err)
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no audio payload in response", ErrSpeechSynthesis)
}

// Translate converts English text to Arabic. Best-effort: on any failure the
// fixed sentinel string is returned instead of an error.
func (c *Client) Translate(ctx context.Context, text string) string {
	req := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: translatePrompt(text)}}}},
		GenerationConfig: &generationConfig{Temperature: 0.3},
	}

	resp, err := c.call(ctx, c.textModel, req)
	if err != nil {
		c.log.Warnw("translation failed", "err", err)
		return TranslationFailedSentinel
	}

	out := strings.TrimSpace(resp.text())
	if out == "" {
		return "Translation unavailable"
	}
	return out
}

// HelperMode selects the chat-helper behavior.
type HelperMode string

const (
	HelperTranslate HelperMode = "translate"
	HelperCorrect   HelperMode = "correct"
)

// HelperRespond powers the conversation side panel: translate Arabic drafts
// to English, or correct English drafts.
func (c *Client) HelperRespond(ctx context.Context, text string, mode HelperMode) (string, error) {
	req := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: helperPrompt(text, mode)}}}},
		GenerationConfig: &generationConfig{Temperature: 0.3},
	}

	resp, err := c.call(ctx, c.textModel, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.text()), nil
}
