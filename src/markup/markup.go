/*
Package markup renders a post's plaintext content into the html_content
stored alongside it. The grammar is deliberately tiny: green-text quote
lines, bold, italics, and >>id reply references. Anything fancier belongs
to a collaborator, not to us.
*/
package markup

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var reReplyRef = regexp.MustCompile(`&gt;&gt;(\d+)`)
var reBold = regexp.MustCompile(`(\*\*)(.+?)(\*\*)`)
var reItalic = regexp.MustCompile(`(\*)(.+?)(\*)`)

var reRawReplyRef = regexp.MustCompile(`>>(\d+)`)

/*
Extracts the candidate post ids referenced by >>id tokens, in order of first
appearance, without duplicates. Whether an id actually resolves to a post is
the caller's business; pass the resolved set to PostBody.
*/
func ReplyRefs(plaintext string) []int {
	var ids []int
	seen := make(map[int]bool)
	for _, m := range reRawReplyRef.FindAllStringSubmatch(plaintext, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

/*
Renders plaintext to HTML:

  - every line is HTML-escaped and terminated with <br>
  - lines starting with a single > become green-text quote lines
  - **text** becomes bold, *text* becomes italic
  - >>id becomes a link to the referenced post when id is present in
    threads (a map of post id to its thread id on the given board);
    unresolved references are left as escaped text

A nil body renders the empty post-content div. Rendering is deterministic:
the same inputs always produce the same bytes.
*/
func PostBody(plaintext *string, board string, threads map[int]int) string {
	if plaintext == nil {
		return `<div class="post-content"></div>`
	}

	var b strings.Builder
	for _, line := range strings.Split(*plaintext, "\n") {
		line = strings.TrimSuffix(line, "\r")
		line = html.EscapeString(line)
		if strings.HasPrefix(line, "&gt;") && !strings.HasPrefix(line, "&gt;&gt;") {
			b.WriteString(`<div class="green-text">`)
			b.WriteString(line)
			b.WriteString(`</div>`)
		} else {
			b.WriteString(line)
		}
		b.WriteString("<br>")
	}

	body := reBold.ReplaceAllString(b.String(), "<b>$2</b>")
	body = reItalic.ReplaceAllString(body, "<em>$2</em>")
	body = reReplyRef.ReplaceAllStringFunc(body, func(ref string) string {
		id, _ := strconv.Atoi(reReplyRef.FindStringSubmatch(ref)[1])
		thread, ok := threads[id]
		if !ok {
			return ref
		}
		return fmt.Sprintf(`<a href="/%s/%d#%d">&gt;&gt;%d</a>`, board, thread, id, id)
	})

	return body
}
