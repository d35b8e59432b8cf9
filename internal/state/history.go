package state

// History is the ordered log of committed paths. Insertion order is paint
// order, oldest first. It only grows at the tail and only shrinks from the
// tail (Undo) or all at once (Clear).
//
// History is not safe for concurrent use; it belongs to the UI event thread.
type History struct {
	paths []*Path
}

func NewHistory() *History {
	return &History{paths: make([]*Path, 0, 64)}
}

// Commit freezes p and appends it. Nil or empty paths are ignored.
func (h *History) Commit(p *Path) bool {
	if p == nil || p.Len() == 0 {
		return false
	}
	p.Freeze()
	h.paths = append(h.paths, p)
	logger().Debug("path committed", "id", p.ID, "tool", p.Style.Tool, "points", p.Len(), "history", len(h.paths))
	return true
}

// Undo removes and returns the most recent path. It is a no-op on an empty
// history.
func (h *History) Undo() (*Path, bool) {
	if len(h.paths) == 0 {
		return nil, false
	}
	last := h.paths[len(h.paths)-1]
	h.paths[len(h.paths)-1] = nil
	h.paths = h.paths[:len(h.paths)-1]
	logger().Debug("path undone", "id", last.ID, "history", len(h.paths))
	return last, true
}

// Clear drops every path and returns how many were removed.
func (h *History) Clear() int {
	n := len(h.paths)
	clear(h.paths)
	h.paths = h.paths[:0]
	if n > 0 {
		logger().Debug("history cleared", "removed", n)
	}
	return n
}

func (h *History) Len() int { return len(h.paths) }

// Paths returns the committed paths in paint order. The slice is a copy; the
// paths themselves are frozen.
func (h *History) Paths() []*Path {
	out := make([]*Path, len(h.paths))
	copy(out, h.paths)
	return out
}

// Last returns the most recent path or nil.
func (h *History) Last() *Path {
	if len(h.paths) == 0 {
		return nil
	}
	return h.paths[len(h.paths)-1]
}
