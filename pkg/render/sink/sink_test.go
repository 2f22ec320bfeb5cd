package sink

import (
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
)

var testConfig = justified.Config{ContainerWidth: 600, TargetRowHeight: 200, BoxSpacing: 10}

// testGallery has one two-item caption group, an uncaptioned video and an
// image with a title of its own.
func testGallery() *gallery.Gallery {
	spring := gallery.Caption{Title: "Spring", Line1: "Vogue", Line2: "2024"}
	return gallery.New([]gallery.MediaItem{
		gallery.NewImage("img/a.jpg", "img/a-full.jpg", 1500, 1000, spring),
		gallery.NewImage("img/b.jpg", "", 1000, 1000, spring),
		gallery.NewVideo("clips/c.mp4", "clips/c.jpg", 1080, 1920, gallery.Caption{}),
		gallery.NewImage("https://cdn.example.com/d.jpg", "", 800, 1200, gallery.Caption{Title: "Solo <1>"}),
	})
}

func testLayout(g *gallery.Gallery) justified.Result {
	return g.Layout(testConfig)
}
