// Package enhance implements best-effort AI text polishing for résumé fields.
//
// An Enhancer never fails: any provider error, timeout, open breaker or unusable
// reply yields the original text. A Dispatcher runs enhancements in the background
// and feeds each result back into a document session as an ordinary command.
package enhance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-craft/internal/llm"
	"github.com/jonathan/resume-craft/internal/prompts"
)

const (
	promptFile = "enhance.json"

	// DefaultLabel is used when a caller gives no context label
	DefaultLabel = "professional resume"

	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.7
	defaultConcurrency = 4
)

// Options configures an Enhancer. Zero values select defaults.
type Options struct {
	Tier        llm.ModelTier
	Timeout     time.Duration
	Temperature float32
	// Concurrency bounds EnhanceBatch
	Concurrency int
	// Cache is optional
	Cache Cache
	// Breaker overrides the default circuit breaker settings
	Breaker *gobreaker.Settings
	Log     logrus.FieldLogger
}

// Request is one item of a batch
type Request struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Enhancer polishes text through an llm.Client
type Enhancer struct {
	client llm.Client
	opts   Options
	cb     *gobreaker.CircuitBreaker
	log    logrus.FieldLogger
}

// New creates an Enhancer. A nil client yields an Enhancer that returns every input unchanged.
func New(client llm.Client, opts Options) *Enhancer {
	if opts.Tier == "" {
		opts.Tier = llm.TierLite
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "enhance")

	settings := defaultBreakerSettings()
	if opts.Breaker != nil {
		settings = *opts.Breaker
	}
	if settings.OnStateChange == nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		}
	}

	return &Enhancer{
		client: client,
		opts:   opts,
		cb:     gobreaker.NewCircuitBreaker(settings),
		log:    log,
	}
}

func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
	}
}

// Enabled reports whether a provider is configured
func (e *Enhancer) Enabled() bool {
	return e.client != nil
}

// Enhance returns a polished version of text. label names the field the text belongs to.
// Empty or whitespace-only text returns "" without calling the provider.
func (e *Enhancer) Enhance(ctx context.Context, text, label string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if e.client == nil {
		return text
	}
	if strings.TrimSpace(label) == "" {
		label = DefaultLabel
	}
	log := e.log.WithField("label", label)

	key := cacheKey(e.client.GetModel(e.opts.Tier), label, text)
	if e.opts.Cache != nil {
		cached, ok, err := e.opts.Cache.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("enhancement cache lookup failed")
		} else if ok {
			log.Debug("enhancement served from cache")
			return cached
		}
	}

	userPrompt, err := prompts.Render(promptFile, "polish-user", map[string]string{
		"Label": label,
		"Text":  text,
	})
	if err != nil {
		log.WithError(err).Warn("enhancement prompt unavailable")
		return text
	}
	systemPrompt, err := prompts.Get(promptFile, "polish-system")
	if err != nil {
		log.WithError(err).Warn("enhancement prompt unavailable")
		return text
	}

	out, err := e.generate(ctx, llm.Prompt{
		System:      systemPrompt,
		User:        userPrompt,
		Temperature: e.opts.Temperature,
	})
	if err != nil {
		log.WithError(err).Warn("enhancement failed, keeping original text")
		return text
	}
	if e.opts.Cache != nil {
		if err := e.opts.Cache.Set(ctx, key, out); err != nil {
			log.WithError(err).Warn("enhancement cache store failed")
		}
	}
	return out
}

// GenerateSummary writes a short professional summary for role from the experience
// highlights. It returns "" on failure or when both inputs are empty.
func (e *Enhancer) GenerateSummary(ctx context.Context, role, highlights string) string {
	if e.client == nil || (strings.TrimSpace(role) == "" && strings.TrimSpace(highlights) == "") {
		return ""
	}
	userPrompt, err := prompts.Render(promptFile, "summary-user", map[string]string{
		"Role":       strings.TrimSpace(role),
		"Highlights": strings.TrimSpace(highlights),
	})
	if err != nil {
		e.log.WithError(err).Warn("summary prompt unavailable")
		return ""
	}

	out, err := e.generate(ctx, llm.Prompt{User: userPrompt, Temperature: e.opts.Temperature})
	if err != nil {
		e.log.WithError(err).WithField("role", role).Warn("summary generation failed")
		return ""
	}
	return out
}

// EnhanceBatch enhances every request concurrently. Result i belongs to reqs[i].
func (e *Enhancer) EnhanceBatch(ctx context.Context, reqs []Request) []string {
	out := make([]string, len(reqs))
	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)
	for i, r := range reqs {
		g.Go(func() error {
			out[i] = e.Enhance(ctx, r.Text, r.Label)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// errEmptyReply counts as a breaker failure
var errEmptyReply = errors.New("empty reply")

// generate performs one provider call through the breaker with a timeout
func (e *Enhancer) generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	res, err := e.cb.Execute(func() (interface{}, error) {
		raw, err := e.client.GenerateContent(ctx, prompt, e.opts.Tier)
		if err != nil {
			return nil, err
		}
		text := llm.CleanText(raw)
		if text == "" {
			return nil, errEmptyReply
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
