package parsing

import (
	"strings"

	"github.com/jonathan/job-board/internal/schema"
)

// systemInstruction is the fixed system turn for resume extraction.
const systemInstruction = `You are an expert resume parser.

Extract information EXACTLY according to the provided schema.

Rules:
- Output ONLY valid JSON that conforms to the schema
- Do NOT include explanations, markdown, or additional text
- Do NOT infer or calculate values
- If information is missing, use null or empty arrays
- Preserve original wording and date formats exactly as written
- Extract skills from both the skills section and experience descriptions`

// BuildPrompt constructs the user turn of the extraction prompt for a schema
// variant. The extraction rules travel separately as the system instruction.
// Output is deterministic for a given variant and resume text.
func BuildPrompt(def *schema.Definition, resumeText string) string {
	var sb strings.Builder

	sb.WriteString(def.FormatInstructions())
	sb.WriteString("\nParse the following resume text:\n\n")
	sb.WriteString(resumeText)

	return sb.String()
}
