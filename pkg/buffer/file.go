package buffer

import (
	"bufio"
	"fmt"
	"os"

	"example.com/codepad/pkg/codec"
)

// Open replaces the buffer content with the file at path and records path
// as the buffer's path. On failure the buffer is left empty, the path is
// cleared and the status reads "<path> not found".
func (b *Buffer) Open(path string) error {
	start := b.opt.Now()
	b.logger.Event("open.attempt", map[string]any{"file": path})
	b.clear()
	data, err := os.ReadFile(path)
	if err != nil {
		b.path.Reset()
		b.setStatus("%s not found", path)
		b.logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("open %s: %w", path, err)
	}
	b.setPath([]byte(path))
	if err := b.InsertBlock(data); err != nil {
		// a partial load must not be saved back over the file
		b.clear()
		b.path.Reset()
		b.logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("open %s: %w", path, err)
	}
	b.MoveCursorTo(0)
	elapsed := b.opt.Now().Sub(start)
	b.setStatus("Opened (%.2fs)", elapsed.Seconds())
	b.logger.Event("open.success", map[string]any{
		"file":  path,
		"bytes": len(data),
		"runes": b.text.Len(),
		"lines": b.lines.Len(),
	})
	return nil
}

// Save writes every codepoint as UTF-8 to path, replacing its content.
func (b *Buffer) Save(path string) error {
	start := b.opt.Now()
	b.logger.Event("save.attempt", map[string]any{"file": path})
	f, err := os.Create(path)
	if err != nil {
		b.setStatus("%s not found", path)
		b.logger.Event("save.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("save %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, cp := range b.text.Items() {
		enc, n := codec.Encode(cp)
		if _, err = w.Write(enc[:n]); err != nil {
			break
		}
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		b.setStatus("%s not written", path)
		b.logger.Event("save.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("save %s: %w", path, err)
	}
	b.setPath([]byte(path))
	elapsed := b.opt.Now().Sub(start)
	b.setStatus("Saved (%.2fs)", elapsed.Seconds())
	b.logger.Event("save.success", map[string]any{"file": path, "runes": b.text.Len()})
	return nil
}

// SaveCurrent saves to the buffer's own path.
func (b *Buffer) SaveCurrent() error {
	return b.Save(b.Path())
}
