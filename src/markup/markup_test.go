package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string {
	return &s
}

func TestReplyRefs(t *testing.T) {
	assert.Nil(t, ReplyRefs("no refs here"))
	assert.Equal(t, []int{12}, ReplyRefs(">>12"))
	assert.Equal(t, []int{12, 7}, ReplyRefs(">>12 and >>7 and >>12 again"))
	assert.Equal(t, []int{3}, ReplyRefs("quoting\n>>3\nmid-thread"))
}

func TestPostBody(t *testing.T) {
	t.Run("nil body", func(t *testing.T) {
		assert.Equal(t, `<div class="post-content"></div>`, PostBody(nil, "b", nil))
	})
	t.Run("plain line", func(t *testing.T) {
		assert.Equal(t, "hello<br>", PostBody(ptr("hello"), "b", nil))
	})
	t.Run("escapes html", func(t *testing.T) {
		body := PostBody(ptr(`<script>alert("hi")</script>`), "b", nil)
		assert.NotContains(t, body, "<script>")
		assert.Contains(t, body, "&lt;script&gt;")
	})
	t.Run("green text", func(t *testing.T) {
		body := PostBody(ptr("> implying"), "b", nil)
		assert.Equal(t, `<div class="green-text">&gt; implying</div><br>`, body)
	})
	t.Run("reply ref is not green text", func(t *testing.T) {
		body := PostBody(ptr(">>42"), "b", nil)
		assert.NotContains(t, body, "green-text")
	})
	t.Run("bold and italic", func(t *testing.T) {
		body := PostBody(ptr("**loud** and *quiet*"), "b", nil)
		assert.Equal(t, "<b>loud</b> and <em>quiet</em><br>", body)
	})
	t.Run("resolved reply ref becomes a link", func(t *testing.T) {
		body := PostBody(ptr(">>2 agreed"), "b", map[int]int{2: 1})
		assert.Equal(t, `<a href="/b/1#2">&gt;&gt;2</a> agreed<br>`, body)
	})
	t.Run("unresolved reply ref stays text", func(t *testing.T) {
		body := PostBody(ptr(">>999"), "b", map[int]int{2: 1})
		assert.Equal(t, "&gt;&gt;999<br>", body)
	})
	t.Run("multiline", func(t *testing.T) {
		body := PostBody(ptr("one\r\n> two\nthree"), "b", nil)
		assert.Equal(t, `one<br><div class="green-text">&gt; two</div><br>three<br>`, body)
	})
	t.Run("deterministic", func(t *testing.T) {
		input := ptr("> quote\n>>2 **hi** *there*")
		threads := map[int]int{2: 2}
		first := PostBody(input, "b", threads)
		second := PostBody(input, "b", threads)
		assert.Equal(t, first, second)
	})
}
