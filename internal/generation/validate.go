package generation

import (
	"fmt"

	"github.com/rafysite/faqreator/internal/domain"
)

// responseListKey is the top-level key the model is instructed to answer under.
const responseListKey = "perguntas"

// Field names of one question/answer entry in the model output.
const (
	questionField = "pergunta"
	answerField   = "resposta"
)

// ValidateResponse checks the decoded model content against the expected
// contract and extracts the usable question/answer pairs.
//
// The decoded object must carry a list under the "perguntas" key, otherwise
// the whole response is rejected with ErrSchemaViolation. Individual entries
// that are not objects, or whose question or answer sanitizes to an empty
// string, are dropped without failing the batch. The returned pairs are
// sanitized and ready for persistence; an empty slice is a valid outcome.
func ValidateResponse(decoded map[string]any) ([]domain.QAPair, error) {
	raw, ok := decoded[responseListKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrSchemaViolation, responseListKey)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a list", ErrSchemaViolation, responseListKey)
	}

	pairs := make([]domain.QAPair, 0, len(list))
	for _, entry := range list {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		question, _ := item[questionField].(string)
		answer, _ := item[answerField].(string)

		question = SanitizeText(question)
		answer = SanitizeMultiline(answer)

		if question == "" || answer == "" {
			continue
		}

		pairs = append(pairs, domain.QAPair{Question: question, Answer: answer})
	}

	return pairs, nil
}
