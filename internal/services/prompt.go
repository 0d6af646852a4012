package services

import (
	"fmt"
	"os"
	"strings"
)

// DefaultInstruction is the tutor role prepended to every learner message.
const DefaultInstruction = `Ты преподаватель казахского языка в учебном чате.

Формат ответа:
- только обычный текст
- без markdown, без жирного шрифта, без заголовков и списков
- без эмодзи
- не представляйся и не пиши вступлений

Стиль:
- коротко и понятно, как в живой переписке
- от 3 до 6 предложений

Содержание:
- отвечай только на вопросы об изучении казахского языка
- можно дать пример на казахском с переводом
- если вопрос не про язык, вежливо верни ученика к теме

Сразу отвечай по существу.`

const messageDelimiter = "\n\nСообщение ученика: "

// BuildPrompt joins the instruction and the learner's message.
func BuildPrompt(instruction, message string) string {
	var b strings.Builder
	b.Grow(len(instruction) + len(messageDelimiter) + len(message))
	b.WriteString(instruction)
	b.WriteString(messageDelimiter)
	b.WriteString(message)
	return b.String()
}

// LoadInstruction returns DefaultInstruction when path is empty,
// otherwise the trimmed contents of the file at path.
func LoadInstruction(path string) (string, error) {
	if path == "" {
		return DefaultInstruction, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read tutor prompt: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("tutor prompt file %s is empty", path)
	}
	return text, nil
}
