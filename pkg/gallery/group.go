package gallery

import (
	"slices"
	"strings"
)

// keySep joins title and first line into a group key.
const keySep = "|||"

// Group is a run of items sharing the same title and first caption line.
// Members are item indices in gallery order; the first member is the head
// and is the only one that shows the caption.
type Group struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	Members []int  `json:"members"`
}

// Head returns the index of the captioned item.
func (g Group) Head() int { return g.Members[0] }

func (g Group) clone() Group {
	g.Members = slices.Clone(g.Members)
	return g
}

// Caption returns the caption shown under the head: the title in bold, line1
// emphasized unless it repeats the title, line2 in italics.
func (g Group) Caption() CaptionParts {
	p := CaptionParts{Bold: g.Title, Italic: g.Line2}
	if g.Line1 != g.Title {
		p.Emphasis = g.Line1
	}
	return p
}

// CaptionParts is a rendered group caption. Empty fields are omitted.
type CaptionParts struct {
	Bold     string `json:"bold,omitempty"`
	Emphasis string `json:"emphasis,omitempty"`
	Italic   string `json:"italic,omitempty"`
}

// String joins the non-empty parts with " · ".
func (p CaptionParts) String() string {
	var parts []string
	for _, s := range []string{p.Bold, p.Emphasis, p.Italic} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

// GroupKey returns the grouping key for c and whether c is groupable.
// An empty title falls back to line1; with neither the item is not grouped.
func GroupKey(c Caption) (string, bool) {
	title := c.Title
	if title == "" {
		title = c.Line1
	}
	if title == "" {
		return "", false
	}
	return title + keySep + c.Line1, true
}

// groupItems buckets items by caption key in first-seen order.
func groupItems(items []MediaItem) ([]Group, []int) {
	var groups []Group
	byKey := make(map[string]int)
	memberOf := make([]int, len(items))

	for i, it := range items {
		memberOf[i] = -1
		key, ok := GroupKey(it.Caption)
		if !ok {
			continue
		}
		gi, seen := byKey[key]
		if !seen {
			title := it.Caption.Title
			if title == "" {
				title = it.Caption.Line1
			}
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, Group{
				Key:   key,
				Title: title,
				Line1: it.Caption.Line1,
				Line2: it.Caption.Line2,
			})
		}
		groups[gi].Members = append(groups[gi].Members, i)
		memberOf[i] = gi
	}
	return groups, memberOf
}
