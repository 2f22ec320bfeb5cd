package sink

import (
	"strings"
	"testing"
)

func TestRenderSVG(t *testing.T) {
	g := testGallery()
	svg := string(RenderSVG(g, testLayout(g)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("RenderSVG() missing root element: %.80s", svg)
	}
	if got := strings.Count(svg, `<rect class="tile`); got != 4 {
		t.Errorf("tiles = %d, want 4", got)
	}
	if !strings.Contains(svg, "<style>") || !strings.Contains(svg, ".caption { font: 12px") || !strings.Contains(svg, "\n  </style>") {
		t.Errorf("stylesheet missing or unterminated:\n%s", svg)
	}
	if strings.Contains(svg, "sheet.classList") {
		t.Error("stylesheet leaked the interaction script")
	}
	if strings.Contains(svg, "<image") || strings.Contains(svg, "<script") {
		t.Error("default sheet should have no images or script")
	}
	if !strings.Contains(svg, `<g id="item-0" data-group="0">`) || !strings.Contains(svg, `<g id="item-2">`) {
		t.Errorf("group attributes missing:\n%s", svg)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	g := testGallery()
	svg := string(RenderSVG(g, testLayout(g),
		WithSheetTitle("Book & Film"),
		WithImages("/media/"),
		WithCaptions(),
		WithInteraction(),
	))

	for _, want := range []string{
		"Book &amp; Film",
		`<image href="/media/img/a.jpg"`,
		`<image href="/media/clips/c.jpg"`,
		`<image href="https://cdn.example.com/d.jpg"`,
		`<tspan font-weight="bold">Spring</tspan> <tspan font-style="italic">Vogue</tspan> <tspan font-style="italic">2024</tspan>`,
		"Solo &lt;1&gt;",
		"<script><![CDATA[",
		"sheet.classList.toggle('hl', group !== null);",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
}
