package wordinfo

import "fmt"

const systemPrompt = `You are a professional linguistic assistant.
Your strict duty is to return data in a valid JSON format.

CRITICAL RULES:
1. Always return ONLY a JSON object. No preamble, no markdown blocks.
2. LANGUAGE SCOPE: Analyze the word ONLY within the specified Source Language, even if it exists in other languages with different meanings.
3. TYPO CORRECTION: If the input has a typo, find the closest word ONLY in the Source Language.
4. Use the CEFR scale (A1-C2) for the 'level' field.
5. Structure for 'usageInfo': Use '\n' for line breaks. Translate labels (Synonyms, Forms, Note) into the target language.

JSON Schema:
{
  "originalWord": "string",
  "translation": "string",
  "transcription": "string",
  "partOfSpeech": "string",
  "level": "string",
  "usageInfo": "string",
  "examples": [{"sentence": "string", "translation": "string"}]
}`

func userPrompt(word, source, target string) string {
	return fmt.Sprintf(`Analyze the word/phrase: %q
Source Language: %s
Target Language: %s

Instructions:
- 'translation': Provide the most accurate translation. Use 2-3 only if the word is multi-meaning and common.
- 'partOfSpeech': Provide the name of the part of speech in %s.
- 'usageInfo': Provide synonyms, grammatical forms, and a usage note if the word is complex. Everything in %s.
- 'examples': Exactly 3 simple, high-frequency sentences in %s with translations in %s.`,
		word, source, target, target, target, source, target)
}
