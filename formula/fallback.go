package formula

// AdjustText applies a structural edit on the text of a formula when no
// parsed form is available. Every reference is moved according to its own
// coordinates: there is no home cell to express relative axes from.
func AdjustText(text string, edit Edit) string {
	if !IsFormula(text) || edit.Validate() != nil {
		return text
	}
	var (
		body = text[1:]
		list = findReferences(body)
	)
	for i := len(list) - 1; i >= 0; i-- {
		m := list[i]
		repl := m.adjust(edit)
		body = body[:m.start] + repl + body[m.end:]
	}
	return "=" + body
}

func (m match) adjust(edit Edit) string {
	if !edit.Applies(m.sheet) {
		return m.render(m.first, m.second)
	}
	first, ok := m.first.shift(edit)
	if !ok {
		return brokenRef
	}
	if !m.isRange() {
		return m.render(first, nil)
	}
	second, ok := m.second.shift(edit)
	if !ok {
		return brokenRef
	}
	return m.render(first, &second)
}

func (m match) render(first addr, second *addr) string {
	str := m.prefix + first.String()
	if second != nil {
		str += ":" + second.String()
	}
	return str
}

func (a addr) shift(edit Edit) (addr, bool) {
	var ok bool
	if edit.Op.Rows() {
		a.Line, ok = edit.Shift(a.Line, a.AbsRow)
	} else {
		a.Column, ok = edit.Shift(a.Column, a.AbsCol)
	}
	return a, ok
}
