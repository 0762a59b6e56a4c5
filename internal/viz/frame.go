package viz

// Frame is a fully evaluated graph, ready for a rendering surface. Every
// attribute in a frame was computed from the same weights and hover state.
type Frame struct {
	RootID string      `json:"rootId"`
	Nodes  []FrameNode `json:"nodes"`
	Links  []FrameLink `json:"links"`
	Legend Legend      `json:"legend"`
}

// FrameNode is a node with its resolved style.
type FrameNode struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Title     string   `json:"title"`
	Year      int      `json:"year,omitempty"`
	Citations int      `json:"citations"`
	Fields    []string `json:"fields,omitempty"`
	URL       string   `json:"url,omitempty"`

	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"`
	Root    bool    `json:"root,omitempty"`
	Hovered bool    `json:"hovered,omitempty"`
}

// FrameLink is a link with its resolved style and layout hints.
type FrameLink struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	Similarities []float64 `json:"similarities"`
	Weighted     float64   `json:"weighted"`
	Fused        float64   `json:"fused"`

	Width    float64 `json:"width"`
	Visible  bool    `json:"visible"`
	Color    string  `json:"color"`
	Distance float64 `json:"distance"`
	Strength float64 `json:"strength"`
	Hovered  bool    `json:"hovered,omitempty"`
}

// Legend carries the values a legend needs to explain the encodings.
type Legend struct {
	Citations   CitationScale  `json:"citations"`
	SizeMin     float64        `json:"sizeMin"`
	SizeMax     float64        `json:"sizeMax"`
	CurrentYear int            `json:"currentYear"`
	YearRange   int            `json:"yearRange"`
	Filter      float64        `json:"filter"`
	Metrics     []LegendMetric `json:"metrics"`
	Palette     []string       `json:"palette"`
	OriginColor string         `json:"originColor"`
	FieldColor  string         `json:"defaultFieldColor"`
}

// LegendMetric pairs a similarity metric with its current weight.
type LegendMetric struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// VisibleLinks returns the number of links passing the filter.
func (f *Frame) VisibleLinks() int {
	count := 0
	for _, l := range f.Links {
		if l.Visible {
			count++
		}
	}
	return count
}

// IsEmpty returns true if the frame has no nodes.
func (f *Frame) IsEmpty() bool {
	return len(f.Nodes) == 0
}

// Frame evaluates every node and link of g in one pass.
func (r Resolver) Frame(g *Graph) Frame {
	if g.IsEmpty() {
		return Frame{Nodes: []FrameNode{}, Links: []FrameLink{}}
	}

	f := Frame{
		RootID: g.RootID,
		Nodes:  make([]FrameNode, 0, len(g.Nodes)),
		Links:  make([]FrameLink, 0, len(g.Links)),
		Legend: r.legend(g),
	}

	for i := range g.Nodes {
		f.Nodes = append(f.Nodes, r.frameNode(&g.Nodes[i]))
	}
	for i := range g.Links {
		f.Links = append(f.Links, r.frameLink(&g.Links[i]))
	}

	return f
}

func (r Resolver) frameNode(n *Node) FrameNode {
	p := n.Paper
	return FrameNode{
		ID:        n.ID,
		Label:     r.NodeLabel(n),
		Title:     p.Title,
		Year:      p.Year,
		Citations: p.CitationCount(),
		Fields:    p.Fields,
		URL:       p.S2URL,
		Size:      n.Size,
		Opacity:   r.Opacity(p.Year),
		Color:     r.NodeRGBA(n),
		Root:      n.Root,
		Hovered:   r.Hover.NodeHovered(n.ID),
	}
}

func (r Resolver) frameLink(l *Link) FrameLink {
	return FrameLink{
		ID:           l.ID,
		Source:       l.Source,
		Target:       l.Target,
		Similarities: l.Similarities,
		Weighted:     r.WeightedSimilarity(l),
		Fused:        l.Fused,
		Width:        r.LinkWidth(l),
		Visible:      r.LinkVisible(l),
		Color:        r.LinkRGBA(l),
		Distance:     r.LinkDistance(l),
		Strength:     r.LinkStrength(l),
		Hovered:      r.Hover.LinkHovered(l.ID),
	}
}

func (r Resolver) legend(g *Graph) Legend {
	metrics := make([]LegendMetric, len(g.Metrics))
	for i, m := range g.Metrics {
		metrics[i] = LegendMetric{Name: m.Name, Description: m.Description}
		if i < len(r.Weights) {
			metrics[i].Weight = r.Weights[i]
		}
	}

	return Legend{
		Citations:   g.Citations,
		SizeMin:     SizeMin,
		SizeMax:     SizeMax,
		CurrentYear: r.CurrentYear,
		YearRange:   YearRange,
		Filter:      r.Filter,
		Metrics:     metrics,
		Palette:     r.Palette.Hex(),
		OriginColor: OriginColor.Hex(),
		FieldColor:  DefaultFieldColor.Hex(),
	}
}
