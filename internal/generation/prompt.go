package generation

import (
	"fmt"

	"github.com/rafysite/faqreator/internal/domain"
)

// summaryMaxChars bounds the fallback summary built from a post body.
// Truncation is by character count, not word boundary, for compatibility
// with the behavior the downstream prompt was tuned against.
const summaryMaxChars = 500

// SystemInstruction fixes the output contract for the model: a JSON object
// with a "perguntas" list of pergunta/resposta pairs. The wording is kept
// byte-identical to the prompt the response parser was tuned against.
const SystemInstruction = `Você é muito bom em decifrar o assunto a que se refere um artigo tendo somente o título e o início do texto. Responda somente com JSON no formato: {"perguntas":[{"pergunta": "aqui você faz sua pergunta","resposta": "aqui você responde sua pergunta",{...}]},`

// promptTemplate interpolates title, summary and the requested pair count.
const promptTemplate = `Escrevi um artigo entitulado "%s", com o seguinte resumo "%s", pense como um leitor com conhecimento razoável e crie %d perguntas comuns que possam surgir da leitura desse artigo. Responda a essas perguntas criadas de forma técnica, porém, de fácil entendimento.`

// BuildSummary returns the post's excerpt if non-empty (markup-stripped);
// otherwise the markup-stripped body truncated to its first 500 characters.
func BuildSummary(post *domain.Post) string {
	if post.Excerpt != "" {
		return StripTags(post.Excerpt)
	}

	content := []rune(StripTags(post.Body))
	if len(content) > summaryMaxChars {
		content = content[:summaryMaxChars]
	}

	return string(content)
}

// BuildPrompt deterministically interpolates title, summary and the requested
// FAQ count into the fixed instruction template. Pure function: same inputs
// always yield byte-identical output.
func BuildPrompt(title, summary string, count int) string {
	return fmt.Sprintf(promptTemplate, title, summary, count)
}
