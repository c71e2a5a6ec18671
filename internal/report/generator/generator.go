package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"report-srv/internal/report"
	"report-srv/pkg/openai"
)

// Generate asks the LLM for the report body of query.
func (g *implGenerator) Generate(ctx context.Context, query string) (report.Content, error) {
	raw, err := g.llm.Generate(ctx, openai.GenerateRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   query,
		Temperature:  defaultTemperature,
		JSONMode:     true,
	})
	if err != nil {
		g.l.Errorf(ctx, "report.generator.Generate: LLM call failed: %v", err)
		return report.Content{}, err
	}

	body := stripCodeFence(raw)
	if err := g.validate(body); err != nil {
		g.l.Warnf(ctx, "report.generator.Generate: Invalid LLM output: %v", err)
		return report.Content{}, err
	}

	var content report.Content
	if err := json.Unmarshal([]byte(body), &content); err != nil {
		return report.Content{}, fmt.Errorf("failed to parse report JSON: %w", err)
	}
	return content, nil
}

func (g *implGenerator) validate(body string) error {
	result, err := g.schema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// stripCodeFence removes a ```json fence some models add even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
