package stage

import "fmt"

const extractionPrompt = `Extract ALL text content from this document with maximum accuracy:
1. Preserve all formatting including:
   - Line breaks and paragraphs
   - Bullet points and numbering
   - Section headings and document structure
2. Include ALL text elements:
   - Body text
   - Headers and footers
   - Captions
   - Inscriptions, including text on irregular surfaces
   - Handwritten notes, if legible
3. For accuracy:
   - Mark uncertain characters with [?]
   - Maintain original spacing
   - Do not correct or modify the original text
4. Accuracy assessment:
   - Estimate a confidence percentage for the extraction
   - Note any challenging areas

Return in this format:
[Accuracy: XX%]
Extracted Text:
[The complete extracted text here]`

const correctionPrompt = `Review this extracted text and:
1. Fix obvious OCR errors while preserving meaning
2. Maintain original formatting exactly
3. Do not modify proper nouns or technical terms
4. Preserve all special characters

Text to correct:
%s`

const translationPrompt = `Translate this to %s while:
1. Preserving all formatting (line breaks, paragraphs, etc.)
2. Maintaining bullet points and numbering
3. Keeping section structure
4. Not translating proper nouns unless a standard translation exists

Only return the translated text:

%s`

const explanationPrompt = `Provide a detailed explanation of the following text with the following guidelines:
1. Summarize key points clearly.
2. Explain any technical terms in simple language.
3. Highlight important details.
4. Identify any unclear or ambiguous sections.
5. Do NOT use asterisks (*), markdown, or special formatting symbols. Use plain text only.

Text:
%s`

func correctionInstruction(text string) string {
	return fmt.Sprintf(correctionPrompt, text)
}

func translationInstruction(text, target string) string {
	return fmt.Sprintf(translationPrompt, target, text)
}

func explanationInstruction(text string) string {
	return fmt.Sprintf(explanationPrompt, text)
}
