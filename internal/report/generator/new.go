package generator

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"report-srv/internal/report"
	"report-srv/pkg/log"
	"report-srv/pkg/openai"
)

const defaultTemperature = 0.4

type implGenerator struct {
	l      log.Logger
	llm    openai.IOpenAI
	schema *gojsonschema.Schema
}

// New creates a Generator that asks the LLM for a JSON report and validates it.
func New(l log.Logger, llm openai.IOpenAI) (report.Generator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(contentSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile content schema: %w", err)
	}
	return &implGenerator{
		l:      l,
		llm:    llm,
		schema: schema,
	}, nil
}
