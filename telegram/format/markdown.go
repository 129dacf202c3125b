package format

import "strings"

var (
	mdV1Escaper = strings.NewReplacer(
		`\`, `\\`,
		"_", `\_`,
		"*", `\*`,
		"`", "\\`",
		"[", `\[`,
	)
	mdV2Escaper = strings.NewReplacer(
		`\`, `\\`,
		"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
		"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
		"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
	)
)

// EscapeMarkdown escapes Telegram Markdown (legacy) special characters so
// user-supplied names render literally inside formatted replies.
func EscapeMarkdown(text string) string {
	return mdV1Escaper.Replace(text)
}

// EscapeMarkdownV2 escapes the full MarkdownV2 special set.
func EscapeMarkdownV2(text string) string {
	return mdV2Escaper.Replace(text)
}
