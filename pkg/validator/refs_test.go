package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractReferences(t *testing.T) {
	t.Run("markdown links", func(t *testing.T) {
		body := "See [the guide](references/guide.md) and [setup](./scripts/setup.py).\n"
		refs := ExtractReferences(body)
		assert.Contains(t, refs, "references/guide.md")
		assert.Contains(t, refs, "scripts/setup.py")
	})

	t.Run("inline code spans", func(t *testing.T) {
		body := "Run `scripts/extract.py` first.\n"
		refs := ExtractReferences(body)
		assert.Contains(t, refs, "scripts/extract.py")
	})

	t.Run("bare mentions in fenced code blocks", func(t *testing.T) {
		body := "Example:\n\n```bash\npython scripts/run.py --all\n```\n"
		refs := ExtractReferences(body)
		assert.Contains(t, refs, "scripts/run.py")
	})

	t.Run("urls and anchors are skipped", func(t *testing.T) {
		body := "See [docs](https://example.com/scripts/fake.py) and [above](#section).\n"
		refs := ExtractReferences(body)
		assert.NotContains(t, refs, "https://example.com/scripts/fake.py")
		assert.NotContains(t, refs, "#section")
	})

	t.Run("deduplicates and sorts", func(t *testing.T) {
		body := "Use `scripts/a.py` then [a](scripts/a.py) then `assets/z.bin`.\n"
		refs := ExtractReferences(body)
		assert.Equal(t, []string{"assets/z.bin", "scripts/a.py"}, refs)
	})

	t.Run("empty body", func(t *testing.T) {
		assert.Empty(t, ExtractReferences(""))
	})
}
