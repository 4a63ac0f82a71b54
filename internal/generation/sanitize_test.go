package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello world", StripTags("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "Texto", StripTags("Texto<script type=\"text/javascript\">evil()</script>"))
	assert.Equal(t, "a & b", StripTags("a &amp; b"))
	assert.Equal(t, "", StripTags("<style>.x{color:red}</style>"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "O que é backup?", SanitizeText("  O que  é\nbackup?  "))
	assert.Equal(t, "Pergunta", SanitizeText("<h3>Pergunta</h3>"))
	assert.Equal(t, "", SanitizeText("<p>   </p>"))
}

func TestSanitizeMultiline(t *testing.T) {
	got := SanitizeMultiline("Linha um.\r\n\r\nLinha   dois.<br/>")
	assert.Equal(t, "Linha um.\n\nLinha dois.", got)
}
