package dom

import (
	"strings"
	"testing"
)

func TestParse_ElementOffsets(t *testing.T) {
	src := `<html><body><p>Hello</p></body></html>`
	root := Parse(src)

	p := root.FindFirst(func(n *Node) bool { return n.IsElement("p") })
	if p == nil {
		t.Fatal("Expected to find <p>")
	}
	if got := src[p.Start:p.End]; got != "<p>Hello</p>" {
		t.Errorf("Expected element span %q, got %q", "<p>Hello</p>", got)
	}

	text := p.FirstTextDescendant()
	if text == nil {
		t.Fatal("Expected a text descendant")
	}
	if got := src[text.Start:text.End]; got != "Hello" {
		t.Errorf("Expected text span %q, got %q", "Hello", got)
	}
}

func TestParse_TextSpanCoversSubtree(t *testing.T) {
	src := `<div>first <b>bold</b> last</div>`
	root := Parse(src)

	div := root.FindFirst(func(n *Node) bool { return n.IsElement("div") })
	if div == nil {
		t.Fatal("Expected to find <div>")
	}
	start, end, ok := div.TextSpan()
	if !ok {
		t.Fatal("Expected a text span")
	}
	if got := src[start:end]; got != "first <b>bold</b> last" {
		t.Errorf("Expected span covering all text, got %q", got)
	}
	if div.Text() != "first bold last" {
		t.Errorf("Expected collapsed text, got %q", div.Text())
	}
}

func TestParse_UnclosedTagRecovers(t *testing.T) {
	src := `<div><p>Orphan text`
	root := Parse(src)

	p := root.FindFirst(func(n *Node) bool { return n.IsElement("p") })
	if p == nil {
		t.Fatal("Expected to find unclosed <p>")
	}
	if p.End != len(src) {
		t.Errorf("Expected unclosed element to span to EOF (%d), got %d", len(src), p.End)
	}
	if p.Text() != "Orphan text" {
		t.Errorf("Expected text to survive recovery, got %q", p.Text())
	}
}

func TestParse_MisnestedTags(t *testing.T) {
	src := `<b><i>both</b></i> after`
	root := Parse(src)

	// The stray </i> is ignored; the <i> is implicitly closed by </b>
	i := root.FindFirst(func(n *Node) bool { return n.IsElement("i") })
	if i == nil {
		t.Fatal("Expected to find <i>")
	}
	if i.Text() != "both" {
		t.Errorf("Expected mis-nested text preserved, got %q", i.Text())
	}
	if !strings.Contains(root.Text(), "after") {
		t.Errorf("Expected trailing text preserved, got %q", root.Text())
	}
}

func TestParse_EntitiesDecodedButOffsetsRaw(t *testing.T) {
	src := `<p>Tom &amp; Jerry</p>`
	root := Parse(src)

	text := root.FirstTextDescendant()
	if text == nil {
		t.Fatal("Expected a text node")
	}
	if text.Data != "Tom & Jerry" {
		t.Errorf("Expected decoded text, got %q", text.Data)
	}
	if got := src[text.Start:text.End]; got != "Tom &amp; Jerry" {
		t.Errorf("Expected raw span to keep the entity, got %q", got)
	}
}

func TestParse_SkipsWhitespaceCommentsDoctype(t *testing.T) {
	src := "<!DOCTYPE html>\n<!-- note -->\n<html>\n  <body>x</body>\n</html>"
	root := Parse(src)

	texts := root.FindAll(func(n *Node) bool { return n.Type == TextNode })
	if len(texts) != 1 {
		t.Fatalf("Expected exactly one text node, got %d", len(texts))
	}
	if texts[0].Data != "x" {
		t.Errorf("Expected text %q, got %q", "x", texts[0].Data)
	}
}

func TestParse_VoidElementsDoNotNest(t *testing.T) {
	src := `<p>line one<br>line two</p>`
	root := Parse(src)

	br := root.FindFirst(func(n *Node) bool { return n.IsElement("br") })
	if br == nil {
		t.Fatal("Expected to find <br>")
	}
	if len(br.Children) != 0 {
		t.Errorf("Expected void element to have no children, got %d", len(br.Children))
	}
	p := root.FindFirst(func(n *Node) bool { return n.IsElement("p") })
	if p.Text() != "line one line two" {
		t.Errorf("Expected both lines under <p>, got %q", p.Text())
	}
}

func TestNode_AttrAndClass(t *testing.T) {
	src := `<div class="profile vital" id="main">x</div>`
	root := Parse(src)

	div := root.FindFirst(func(n *Node) bool { return n.IsElement("div") })
	if div.Attr("id") != "main" {
		t.Errorf("Expected id main, got %q", div.Attr("id"))
	}
	if !div.HasClass("vital") {
		t.Error("Expected class vital")
	}
	if div.HasClass("vita") {
		t.Error("Did not expect partial class match")
	}
}

func TestNode_HasAncestor(t *testing.T) {
	src := `<table><tr><td>cell</td></tr></table>`
	root := Parse(src)

	text := root.FirstTextDescendant()
	if text == nil {
		t.Fatal("Expected a text node")
	}
	if !text.HasAncestor("table") {
		t.Error("Expected table ancestor")
	}
	if text.HasAncestor("ul", "ol") {
		t.Error("Did not expect list ancestor")
	}
}
