package generator

// contentSchema is the JSON schema every generated report must satisfy.
const contentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "summary", "sections"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "summary": {"type": "string", "minLength": 1},
    "sections": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["heading", "body"],
        "properties": {
          "heading": {"type": "string", "minLength": 1},
          "body": {"type": "string", "minLength": 1}
        }
      }
    },
    "recommendations": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

const systemPrompt = `You are an education and immigration advisor. Write a study & migration report
that answers the user's question. Cover study options, admission requirements, costs, visas,
work rights and a realistic migration pathway. Be specific and practical.

Reply with a single JSON object of this shape and nothing else:
{
  "title": string,
  "summary": string,
  "sections": [{"heading": string, "body": string}],
  "recommendations": [string]
}`
