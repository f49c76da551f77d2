package domain

import (
	"context"
	"log/slog"
	"strings"
)

// Sentiment labels produced by the classifier.
const (
	SentimentNegative = "negative"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
)

// Source identifies which stage of the cascade produced a result.
type Source string

const (
	SourceRule        Source = "rule"
	SourceTransformer Source = "transformer"
	SourceFallback    Source = "fallback"
	SourceEmpty       Source = "empty"
)

// ConfidenceThreshold is the minimum model confidence required to trust a
// directional (non-neutral) label.
const ConfidenceThreshold = 0.60

// maxModelInput bounds the text handed to the model, in characters.
const maxModelInput = 512

// negativeOverrides is the incident/disruption vocabulary. A substring hit
// forces a negative classification regardless of any positive keyword.
var negativeOverrides = []string{
	"accident", "dies", "died", "dead", "killed", "fatal", "injured", "injury",
	"havoc", "red alert", "heavy rain", "flood", "landslide", "collapse",
	"stampede", "evacuate", "evacuation", "missing", "trapped", "crash",
	"pileup", "blocked", "closure", "disruption", "blast", "fire", "stranded",
}

// positiveOverrides is the opening/launch/celebration vocabulary, checked
// only after the negative set.
var positiveOverrides = []string{
	"open", "opens", "launch", "launched", "inaugur", "restored",
	"reopens", "announces", "to open", "celebrates", "celebration",
}

// Prediction is the raw output of the pretrained model capability.
type Prediction struct {
	Label      string  // binary label; anything containing "NEG" is negative
	Confidence float64 // 0.0–1.0
}

// TextClassifier is the pretrained sentiment model capability.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (Prediction, error)
}

// SentimentResult is the immutable outcome of classifying one text.
type SentimentResult struct {
	Sentiment string
	Score     float64
	Source    Source
}

// AnalyzeSentiment classifies text through the rule cascade with the model
// as fallback. A nil model or a model error degrades to a neutral
// zero-confidence result; classification never returns an error.
func AnalyzeSentiment(ctx context.Context, text string, model TextClassifier, logger *slog.Logger) SentimentResult {
	if strings.TrimSpace(text) == "" {
		return SentimentResult{Sentiment: SentimentNeutral, Score: 0.0, Source: SourceEmpty}
	}

	lower := strings.ToLower(text)
	if containsAny(lower, negativeOverrides) {
		return SentimentResult{Sentiment: SentimentNegative, Score: 1.0, Source: SourceRule}
	}
	if containsAny(lower, positiveOverrides) {
		return SentimentResult{Sentiment: SentimentPositive, Score: 1.0, Source: SourceRule}
	}

	if model == nil {
		return SentimentResult{Sentiment: SentimentNeutral, Score: 0.0, Source: SourceFallback}
	}

	pred, err := model.ClassifyText(ctx, truncate(text, maxModelInput))
	if err != nil {
		logger.Warn("sentiment model failed, degrading to neutral", "error", err)
		return SentimentResult{Sentiment: SentimentNeutral, Score: 0.0, Source: SourceFallback}
	}

	if pred.Confidence < ConfidenceThreshold {
		return SentimentResult{Sentiment: SentimentNeutral, Score: pred.Confidence, Source: SourceTransformer}
	}

	sentiment := SentimentPositive
	if strings.Contains(strings.ToUpper(pred.Label), "NEG") {
		sentiment = SentimentNegative
	}
	return SentimentResult{Sentiment: sentiment, Score: pred.Confidence, Source: SourceTransformer}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// truncate bounds s to n characters (not bytes) so multi-byte headlines
// are never split mid-rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
