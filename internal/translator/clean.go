package translator

import (
	"regexp"
	"strings"
)

// thinkingRe matches <think>-style reasoning blocks some models wrap
// around their answer, including a truncated open tag at the end of the
// output. Each variant is listed explicitly; RE2 has no backreferences.
var thinkingRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|(?:<thinking>|<think>|<reasoning>).*$`,
)

// echoRe matches a leading "Here is the translation:" style preamble.
var echoRe = regexp.MustCompile(
	`(?i)^(?:(?:certainly|sure|of course)[,.]? )?(?:here(?:'s| is)(?: the)? )?(?:the )?translation\s*:\s*`,
)

// Clean strips the artifacts LLM-backed services leave in their output:
// reasoning blocks, echoed instructions, and a matching pair of wrapping
// quotes. Non-LLM services never need it.
func Clean(text string) string {
	text = strings.TrimSpace(thinkingRe.ReplaceAllString(text, ""))
	text = strings.TrimSpace(echoRe.ReplaceAllString(text, ""))
	return unquote(text)
}

func unquote(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	pairs := map[rune]rune{'"': '"', '\'': '\'', '«': '»', '“': '”', '‘': '’'}
	if close, ok := pairs[runes[0]]; ok && runes[n-1] == close {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
