package buffer

import "unicode/utf8"

// Mode is the input mode of a buffer.
type Mode int

const (
	// ModeNormal routes typing into the document.
	ModeNormal Mode = iota
	// ModePathEntry routes typing into the path text.
	ModePathEntry
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePathEntry:
		return "path"
	}
	return "unknown"
}

// PathAction is what committing the path text does.
type PathAction int

const (
	PathOpen PathAction = iota
	PathSave
)

// Action returns the pending path action.
func (b *Buffer) Action() PathAction { return b.action }

// SetMode switches modes. Entering path entry clears the path text and asks
// for a path; the previous path is restored if entry is cancelled.
func (b *Buffer) SetMode(m Mode) {
	if m == ModePathEntry && b.mode != ModePathEntry {
		b.prevPath = append(b.prevPath[:0], b.path.Items()...)
		b.path.Reset()
		b.setStatus("Specify path")
	}
	b.mode = m
}

// EnterPathEntry switches to path entry for the given action.
func (b *Buffer) EnterPathEntry(action PathAction) {
	b.action = action
	b.SetMode(ModePathEntry)
}

// AppendToPath appends one byte to the path text.
func (b *Buffer) AppendToPath(c byte) {
	if err := b.path.Push(c); err != nil {
		_ = b.fail("path", err)
	}
}

// PathBackspace removes the last byte of the path text.
func (b *Buffer) PathBackspace() {
	b.path.Pop()
}

// RequestSave saves to the buffer's path, or asks for one when it has none.
func (b *Buffer) RequestSave() error {
	if b.path.Len() == 0 {
		b.EnterPathEntry(PathSave)
		return nil
	}
	return b.SaveCurrent()
}

// HandleRune types r: into the document in normal mode, into the path text
// in path entry.
func (b *Buffer) HandleRune(r rune) error {
	if b.mode == ModePathEntry {
		var enc [utf8.UTFMax]byte
		n := utf8.EncodeRune(enc[:], r)
		for _, c := range enc[:n] {
			b.AppendToPath(c)
		}
		return nil
	}
	return b.InsertCodepoint(r)
}

// HandleEnter inserts a newline, or commits the path text and returns to
// normal mode.
func (b *Buffer) HandleEnter() error {
	if b.mode != ModePathEntry {
		return b.InsertCodepoint('\n')
	}
	b.mode = ModeNormal
	path := b.Path()
	switch b.action {
	case PathSave:
		return b.Save(path)
	default:
		return b.Open(path)
	}
}

// HandleBackspace erases before the cursor, or the last character of the
// path text. In path entry a multi-byte UTF-8 character goes as a whole so
// the path never ends in a partial sequence; PathBackspace drops a single
// byte.
func (b *Buffer) HandleBackspace() {
	if b.mode != ModePathEntry {
		b.Backspace()
		return
	}
	// drop continuation bytes so a multi-byte character goes at once
	for b.path.Len() > 0 {
		if c, _ := b.path.Pop(); utf8.RuneStart(c) {
			break
		}
	}
}

// HandleDelete erases at the cursor. It does nothing in path entry.
func (b *Buffer) HandleDelete() {
	if b.mode == ModePathEntry {
		return
	}
	b.DeleteForward()
}

// HandleTab inserts spaces to the next tab stop in normal mode.
func (b *Buffer) HandleTab() error {
	if b.mode == ModePathEntry {
		return nil
	}
	return b.InsertTab()
}

// HandleEscape cancels path entry and restores the previous path.
func (b *Buffer) HandleEscape() {
	if b.mode != ModePathEntry {
		return
	}
	b.mode = ModeNormal
	b.setPath(b.prevPath)
	b.status.Reset()
}
