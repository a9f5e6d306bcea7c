package llm

// outputSchema constrains the JSON object the model must return.
const outputSchema = `{
  "type": "object",
  "required": ["skills", "experience", "salary", "remote_work"],
  "properties": {
    "skills": {"type": "array", "items": {"type": "string"}},
    "experience": {
      "type": "object",
      "properties": {
        "years": {"type": ["integer", "null"], "minimum": 0, "maximum": 60},
        "level": {"type": ["string", "null"], "enum": ["entry", "mid", "senior", "executive", "", null]}
      }
    },
    "salary": {
      "type": "object",
      "properties": {
        "min": {"type": ["integer", "null"]},
        "max": {"type": ["integer", "null"]},
        "amount": {"type": ["integer", "null"]}
      }
    },
    "remote_work": {"type": "boolean"},
    "locations": {"type": "array", "items": {"type": "string"}},
    "education": {"type": "array", "items": {"type": "string"}},
    "benefits": {"type": "array", "items": {"type": "string"}}
  }
}`

const systemPrompt = "You extract structured metadata from job postings. " +
	"Use only facts stated in the posting. Respond with a single JSON object."

const promptTemplate = `Extract metadata from the job posting below.

Return ONLY valid JSON with this structure:
{
  "skills": []string,          // technologies, languages, frameworks and tools, lowercase
  "experience": {
    "years": int or null,      // minimum years of experience required
    "level": string or null    // one of entry, mid, senior, executive
  },
  "salary": {
    "min": int or null,        // annual USD
    "max": int or null,
    "amount": int or null      // when a single figure is given
  },
  "remote_work": bool,
  "locations": []string,       // lowercase place names
  "education": []string,       // lowercase degrees and fields of study
  "benefits": []string         // lowercase benefit names
}

Posting:
"""
%s
"""
`
