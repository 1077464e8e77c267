// Package assistant proxies chat turns to the generative-AI collaborator.
// The core hands it a plain-text digest of directory results; everything
// about prompting, retries and degradation lives here so the rest of the
// service never sees the upstream API.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
	"github.com/vidalocal/discovery/internal/resilience"
	"github.com/vidalocal/discovery/internal/text"
)

// DegradedMessage is returned when the upstream is unavailable after retries.
// The chat surface stays up even when the collaborator is down.
const DegradedMessage = "Desculpe, estou com dificuldades para responder agora. " +
	"Tente novamente em alguns instantes."

var errRateLimited = errors.New("assistant: upstream rate limited")

type ChatRequest struct {
	Message      string
	CityName     string
	UserLocation *models.GroundingLocation
	LocalContext string
}

type Client struct {
	httpClient *http.Client
	cfg        config.AssistantConfig
	breaker    *gobreaker.CircuitBreaker
	cache      *responseCache
	logger     *zap.Logger
}

func NewClient(cfg config.AssistantConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:        cfg,
		breaker:    resilience.NewCircuitBreaker("assistant", cfg.CircuitBreaker, logger),
		cache:      newResponseCache(cfg.CacheCapacity),
		logger:     logger,
	}
}

// Chat sends one user turn to the upstream model. Rate-limit responses are
// retried with jittered exponential backoff; any other failure, and retry
// exhaustion, degrade to a canned apology rather than surfacing an error to
// the chat UI.
func (c *Client) Chat(ctx context.Context, req ChatRequest) *models.AssistantMessage {
	ctx, span := observability.StartSpan(ctx, "assistant.chat")
	defer span.End()

	key := cacheKey(req)
	if cached, ok := c.cache.Get(key); ok {
		observability.AssistantRequestsTotal.WithLabelValues("cache_hit").Inc()
		return cached
	}

	var msg *models.AssistantMessage
	err := resilience.Retry(ctx, c.cfg.Retry, func() error {
		result, err := c.breaker.Execute(func() (any, error) {
			return c.call(ctx, req)
		})
		if err != nil {
			if errors.Is(err, errRateLimited) {
				observability.AssistantRetriesTotal.Inc()
				return err
			}
			return resilience.Permanent(err)
		}
		msg = result.(*models.AssistantMessage)
		return nil
	})
	if err != nil {
		observability.AssistantRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Error("assistant upstream failed", zap.Error(err))
		return &models.AssistantMessage{Role: "model", Text: DegradedMessage}
	}

	observability.AssistantRequestsTotal.WithLabelValues("success").Inc()
	c.cache.Set(key, msg)
	return msg
}

func (c *Client) call(ctx context.Context, req ChatRequest) (*models.AssistantMessage, error) {
	payload := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt(req)}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: req.Message}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(c.cfg.Endpoint, "/"), c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling assistant upstream: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading assistant response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || isResourceExhausted(respBody) {
		return nil, errRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant upstream status %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return nil, fmt.Errorf("decoding assistant response: %w", err)
	}
	if len(gen.Candidates) == 0 {
		return nil, errors.New("assistant: empty candidate list")
	}

	cand := gen.Candidates[0]
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}

	msg := &models.AssistantMessage{
		Role: "model",
		Text: sb.String(),
	}
	for _, ch := range cand.GroundingMetadata.GroundingChunks {
		out := models.GroundingChunk{}
		if ch.Web != nil {
			out.Web = &models.WebChunk{URI: ch.Web.URI, Title: ch.Web.Title}
		}
		if ch.Maps != nil {
			out.Maps = &models.MapsChunk{URI: ch.Maps.URI, Title: ch.Maps.Title}
		}
		if out.Web != nil || out.Maps != nil {
			msg.GroundingChunks = append(msg.GroundingChunks, out)
		}
	}

	c.logger.Debug("assistant turn completed",
		zap.Duration("took", time.Since(start)),
		zap.Int("grounding_chunks", len(msg.GroundingChunks)),
	)
	return msg, nil
}

// systemPrompt frames the model as a local guide for the active city and
// pins it to the directory digest when one exists.
func systemPrompt(req ChatRequest) string {
	var sb strings.Builder
	sb.WriteString("Você é um assistente local que ajuda moradores de ")
	if req.CityName != "" {
		sb.WriteString(req.CityName)
	} else {
		sb.WriteString("cidades do interior do Brasil")
	}
	sb.WriteString(" a encontrar estabelecimentos e serviços. Responda em português, de forma curta e direta.")

	if req.LocalContext != "" {
		sb.WriteString("\n\nEstabelecimentos verificados do diretório local, prefira estes ao responder:\n")
		sb.WriteString(req.LocalContext)
	}
	if req.UserLocation != nil {
		fmt.Fprintf(&sb, "\n\nLocalização aproximada do usuário: %.4f, %.4f.",
			req.UserLocation.Latitude, req.UserLocation.Longitude)
	}
	return sb.String()
}

func cacheKey(req ChatRequest) string {
	mode := "city"
	if req.UserLocation != nil {
		mode = "geo"
	}
	return req.CityName + "|" + text.Normalize(req.Message) + "|" + mode
}

func isResourceExhausted(body []byte) bool {
	var e struct {
		Error struct {
			Status string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return false
	}
	return e.Error.Status == "RESOURCE_EXHAUSTED"
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Wire types for the generateContent API.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content           content `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web,omitempty"`
				Maps *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"maps,omitempty"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}
