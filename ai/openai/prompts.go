package openai

import (
	"fmt"
	"strings"

	"github.com/joblens/joblens/ai"
)

const metadataResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "company": {"type": "string"},
    "location": {"type": "string"},
    "field": {"type": "string"},
    "skills": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["title", "company", "location", "field", "skills"],
  "additionalProperties": false
}`

const metadataPromptTemplate = `Extract structured metadata from the given job listing and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "title" is the job title exactly as the listing states it.
- "company" is the hiring company name.
- "location" is the job location; use "" when the listing does not state one.
- "field" must match exactly one of the listed values: %s. Pick the closest match; use "Other" only when nothing fits.
- "skills" lists the technical and professional skills the job requires, both hard and soft skills. Use [] when none are stated.
- Include only information that is explicitly mentioned or clearly implied by the listing. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Acme Corp is hiring a Senior Backend Engineer in Berlin. You will build Go services on Kubernetes. Strong communication skills required."
Output:
{
  "title": "Senior Backend Engineer",
  "company": "Acme Corp",
  "location": "Berlin",
  "field": "Backend Engineering",
  "skills": ["Go", "Kubernetes", "communication"]
}`

const comparisonPrompt = `Compare these two job listings and rate their similarity on a scale from 0 to 1, where:
- 0 means completely different jobs
- 1 means identical jobs or obvious duplicates

Consider:
- Job titles
- Companies
- Required skills
- Job descriptions
- Responsibilities

Return ONLY the numeric similarity score between 0 and 1, nothing else.`

const classifyPromptTemplate = `Classify the following job description into one of these engineering fields:

%s

If the job doesn't fit any of these fields well, choose the closest match. Respond with ONLY the exact name of the field from the list above, nothing else.`

const skillsPrompt = `Extract all technical and professional skills required for this job. Return the skills as a JSON array of strings, each representing a single skill. Include both hard technical skills and important soft skills. Be specific but concise with each skill. Output ONLY the JSON array, nothing else.`

const summarySystemPrompt = `You are a career advisor summarizing job clusters for students.`

// buildMetadataPrompt creates the extraction system prompt with job fields embedded.
func buildMetadataPrompt() string {
	return fmt.Sprintf(metadataPromptTemplate,
		metadataResponseSchema,
		strings.Join(ai.JobFields, ", "))
}

// buildClassifyPrompt creates the field classification system prompt.
func buildClassifyPrompt() string {
	fields := make([]string, len(ai.JobFields))
	for i, field := range ai.JobFields {
		fields[i] = "- " + field
	}
	return fmt.Sprintf(classifyPromptTemplate, strings.Join(fields, "\n"))
}

// buildComparisonInput combines two listings into the comparison user message.
func buildComparisonInput(first, second string) string {
	return fmt.Sprintf("Job Listing 1:\n%s\n\nJob Listing 2:\n%s", first, second)
}
