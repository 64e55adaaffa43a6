package translation

import "context"

// Provider converts article text between languages. The normalization stage
// uses it to bring non-English submissions into English before any headline
// matching happens.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
	SupportedLanguages() []string
}

// TranslateRequest carries one piece of text plus its ISO 639-1 language
// codes. SourceLang may be empty; providers that support it then auto-detect.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// TranslateResponse is the translated text plus which provider produced it
// and how long the call took.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}
