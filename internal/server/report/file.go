package report

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// File дописывает замеры в текстовый файл, по строке на замер.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Report(ctx context.Context, t Timing) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open metrics file: %w", err)
	}
	defer file.Close()

	if _, err = fmt.Fprintln(file, t.String()); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
