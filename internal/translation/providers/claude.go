// Package providers contains the concrete translation backends.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"tabashir-engine/internal/config"
	"tabashir-engine/internal/logging"
	"tabashir-engine/internal/translation/processors"
	"tabashir-engine/pkg/models"
	"tabashir-engine/pkg/utils"
)

// ClaudeProvider translates postings using Anthropic's Claude.
type ClaudeProvider struct {
	client    anthropic.Client
	config    *config.Config
	sanitizer *processors.Sanitizer
	logger    logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance.
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.Translator.APIKey),
	)

	return &ClaudeProvider{
		client:    client,
		config:    cfg,
		sanitizer: processors.NewSanitizer(),
		logger:    logging.GetGlobalLogger(),
	}
}

// TranslateJob renders the posting's localized fields into Arabic in a
// single model call and parses the JSON reply.
func (cp *ClaudeProvider) TranslateJob(ctx context.Context, job models.JobPosting) (models.TranslatedFields, error) {
	startTime := time.Now()

	cp.logger.WithFields(map[string]interface{}{
		"job_id":   job.ID,
		"provider": "claude",
	}).Info("Starting job translation")

	prompt := cp.buildTranslationPrompt(job)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.Translator.Model),
		MaxTokens: int64(cp.config.Translator.MaxTokens),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return models.TranslatedFields{}, utils.NewTranslationError(fmt.Sprintf("claude API call failed: %v", err))
	}

	fields, err := cp.parseResponse(response)
	if err != nil {
		return models.TranslatedFields{}, utils.NewTranslationError(fmt.Sprintf("claude response unusable: %v", err))
	}

	cp.logger.WithFields(map[string]interface{}{
		"job_id":          job.ID,
		"provider":        "claude",
		"processing_time": utils.FormatDuration(time.Since(startTime)),
	}).Info("Job translation completed")

	return fields, nil
}

func (cp *ClaudeProvider) buildTranslationPrompt(job models.JobPosting) string {
	description := cp.sanitizer.Clean(job.JobDescription)

	// Rough estimation: 3 chars per token, and the reply needs room too.
	maxLength := cp.config.Translator.MaxTokens * 3 / 2
	if len(description) > maxLength {
		description = description[:maxLength] + "..."
	}

	payload := map[string]string{
		"job_title":              job.JobTitle,
		"job_description":        description,
		"academic_qualification": job.AcademicQualification,
		"experience":             job.Experience,
		"languages":              job.Languages,
		"salary":                 job.Salary,
		"vacancy_city":           job.VacancyCity,
		"working_hours":          job.WorkingHours,
		"working_days":           job.WorkingDays,
		"company_name":           job.CompanyName,
	}
	source, _ := json.MarshalIndent(payload, "", "  ")

	return fmt.Sprintf(`You are a professional translator for a UAE job board. Translate the values of the following job posting fields from English to Modern Standard Arabic.

Rules:
- Return ONLY a valid JSON object with exactly the same keys, values translated to Arabic.
- Keep numbers, currencies, email addresses, URLs and proper nouns (company names may stay as-is or be transliterated) intact.
- Keep an empty string for any field that is empty in the source.
- Do not add commentary, markdown, or extra keys.

Source fields:
%s`, string(source))
}

func (cp *ClaudeProvider) parseResponse(response *anthropic.Message) (models.TranslatedFields, error) {
	var fields models.TranslatedFields

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	raw := text.String()
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return fields, fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return fields, fmt.Errorf("invalid JSON in response: %w", err)
	}
	return fields, nil
}

// IsHealthy checks if the provider is usable.
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.Translator.APIKey == "" {
		return fmt.Errorf("claude API key not configured")
	}
	return nil
}

// GetProviderName returns the name of the provider.
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
