package transcriber

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const transcribePrompt = `Transcribe the speech in this recording verbatim. The spoken language is %q.
Return only the transcript as continuous prose with normal punctuation.
Do not add timestamps, speaker labels, headings or commentary.`

// Fallbacks for extensions the system MIME table often lacks.
var mediaMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
}

type implGemini struct {
	apiKeys      []string
	currentKey   int
	model        string
	logger       logger.Logger
	pollInterval time.Duration
}

// Transcribe uploads the media file and asks Gemini for a verbatim
// transcript. Gemini returns untimed text, so the result is one segment.
// Beam size does not apply. API keys rotate on rate-limit errors.
func (g *implGemini) Transcribe(ctx context.Context, mediaPath string, opts Options) (*Result, error) {
	mimeType := mediaMIMEType(mediaPath)

	var lastErr error
	for range len(g.apiKeys) {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		text, err := g.transcribeWith(ctx, client, mediaPath, mimeType, opts)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return nil, err
		}

		return &Result{
			Segments: []Segment{{Index: 0, Text: text}},
			Language: opts.Language,
		}, nil
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) transcribeWith(ctx context.Context, client *genai.Client, mediaPath, mimeType string, opts Options) (string, error) {
	file, err := client.Files.UploadFromPath(ctx, mediaPath, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	defer func() {
		if _, err := client.Files.Delete(context.WithoutCancel(ctx), file.Name, nil); err != nil {
			g.logger.Warn(ctx, "Failed to delete uploaded file %s: %v", file.Name, err)
		}
	}()

	file, err = g.waitActive(ctx, client, file)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(fmt.Sprintf(transcribePrompt, opts.Language)),
		}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// waitActive polls until an uploaded video has finished server-side
// processing.
func (g *implGemini) waitActive(ctx context.Context, client *genai.Client, file *genai.File) (*genai.File, error) {
	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.pollInterval):
		}

		var err error
		file, err = client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("poll upload state: %w", err)
		}
	}
	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("gemini could not process %s", file.Name)
	}
	return file, nil
}

func (g *implGemini) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func mediaMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := mediaMIMETypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
