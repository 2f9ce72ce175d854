package records

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxErrorBody    = 64 << 10
	maxErrorMessage = 200
)

// errorMessage pulls a human readable reason out of a rejected response.
// JSON bodies use "message" then "error"; HTML error pages use <title> then the body text.
func errorMessage(resp *http.Response) string {
	fallback := http.StatusText(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	raw = bytes.TrimSpace(raw)
	if err != nil || len(raw) == 0 {
		return fallback
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	if strings.Contains(contentType, "json") || json.Valid(raw) {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil {
			switch {
			case strings.TrimSpace(body.Message) != "":
				return clip(body.Message)
			case strings.TrimSpace(body.Error) != "":
				return clip(body.Error)
			}
		}

		return fallback
	}

	if strings.Contains(contentType, "html") || bytes.HasPrefix(raw, []byte("<")) {
		if msg := htmlMessage(raw); msg != "" {
			return msg
		}

		return fallback
	}

	return clip(string(raw))
}

func htmlMessage(raw []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return clip(title)
	}

	for _, selector := range []string{"h1", "body"} {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return clip(text)
		}
	}

	return ""
}

// clip collapses whitespace and keeps the message short enough for a banner.
func clip(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxErrorMessage {
		return string(runes[:maxErrorMessage]) + "…"
	}

	return text
}
