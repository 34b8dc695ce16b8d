package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"hospital-portal/internal/domain/entity"
)

// FileList keeps the fallback appointments as a JSON array in a local file.
// Appends are serialised within the process only.
type FileList struct {
	path string
	mu   sync.Mutex
}

func NewFileList(path string) *FileList {
	return &FileList{path: path}
}

func (l *FileList) Load(ctx context.Context) ([]entity.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *FileList) Append(ctx context.Context, appointment entity.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.read()
	if err != nil {
		return err
	}
	list = append(list, appointment)

	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".fallback-*.json")
	if err != nil {
		return fmt.Errorf("write fallback list: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write fallback list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write fallback list: %w", err)
	}
	return os.Rename(tmp.Name(), l.path)
}

func (l *FileList) read() ([]entity.Appointment, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fallback list: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var list []entity.Appointment
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode fallback list: %w", err)
	}
	return list, nil
}
