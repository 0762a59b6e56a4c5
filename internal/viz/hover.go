package viz

// Hover tracks the hovered node and link outside the graph records.
// At most one node and one link are hovered; an empty ID means none.
type Hover struct {
	node string
	link string
}

// EnterNode makes id the hovered node and returns the node that was
// hovered before, which the caller should repaint.
func (h *Hover) EnterNode(id string) (previous string) {
	previous = h.node
	h.node = id
	return previous
}

// EnterLink makes id the hovered link and returns the previous one.
func (h *Hover) EnterLink(id string) (previous string) {
	previous = h.link
	h.link = id
	return previous
}

// LeaveNode clears the hovered node.
func (h *Hover) LeaveNode() {
	h.node = ""
}

// LeaveLink clears the hovered link.
func (h *Hover) LeaveLink() {
	h.link = ""
}

// Clear removes all hover state.
func (h *Hover) Clear() {
	h.node, h.link = "", ""
}

// Node returns the hovered node ID, or "" if none.
func (h *Hover) Node() string {
	if h == nil {
		return ""
	}
	return h.node
}

// Link returns the hovered link ID, or "" if none.
func (h *Hover) Link() string {
	if h == nil {
		return ""
	}
	return h.link
}

// NodeHovered reports whether id is the hovered node.
func (h *Hover) NodeHovered(id string) bool {
	return id != "" && h.Node() == id
}

// LinkHovered reports whether id is the hovered link.
func (h *Hover) LinkHovered(id string) bool {
	return id != "" && h.Link() == id
}
