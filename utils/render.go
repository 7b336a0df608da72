package utils

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderSnippetBody prints a snippet body with syntax highlighting. The
// category key doubles as the language hint; unknown languages fall back to
// chroma's plaintext lexer. Rendering problems degrade to plain output
// rather than failing the listing.
func RenderSnippetBody(body string, language string, theme string) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, body+"\n", language, "terminal256", theme); err != nil {
		fmt.Println(body)
		return
	}
	fmt.Print(buf.String())
}
