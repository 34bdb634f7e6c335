package controller

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/audio"
	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/logging"
)

// SpeechController wraps the provider's speech and translation calls.
type SpeechController struct {
	client *genai.Client
	log    *logging.Logger
}

func NewSpeechController(client *genai.Client, log *logging.Logger) *SpeechController {
	return &SpeechController{client: client, log: log}
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

// Synthesize returns the utterance as a playable WAV; pass ?format=base64
// to receive the raw PCM16 payload instead.
func (sc *SpeechController) Synthesize(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	b64, err := sc.client.SynthesizeSpeech(c.Request.Context(), req.Text)
	if err != nil {
		sc.log.Warnw("speech synthesis failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not synthesize audio"})
		return
	}

	if c.Query("format") == "base64" {
		c.JSON(http.StatusOK, gin.H{
			"audio":       b64,
			"sample_rate": audio.SampleRate,
			"encoding":    "pcm16le-mono",
		})
		return
	}

	pcm, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Malformed audio payload"})
		return
	}
	c.Data(http.StatusOK, "audio/wav", audio.EncodeWAV(pcm))
}

type translateRequest struct {
	Text string `json:"text" binding:"required"`
}

// Translate is best-effort; failures surface as the sentinel string, never
// as an HTTP error.
func (sc *SpeechController) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"translation": sc.client.Translate(c.Request.Context(), req.Text),
	})
}

type helperRequest struct {
	Text string           `json:"text" binding:"required"`
	Mode genai.HelperMode `json:"mode" binding:"required"`
}

// Helper powers the conversation side panel: Arabic→English translation or
// English correction of a draft before sending it.
func (sc *SpeechController) Helper(c *gin.Context) {
	var req helperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Mode != genai.HelperTranslate && req.Mode != genai.HelperCorrect {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown helper mode"})
		return
	}

	result, err := sc.client.HelperRespond(c.Request.Context(), req.Text, req.Mode)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Helper request failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
