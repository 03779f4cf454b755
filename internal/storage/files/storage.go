// Package files хранит загруженные изображения продуктов на локальном диске.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage сохраняет файлы в заданный каталог. Имена файлов генерируются,
// исходное имя используется только ради расширения.
type Storage struct {
	dir string
}

// New создаёт каталог хранилища, если его ещё нет.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir возвращает корневой каталог хранилища.
func (s *Storage) Dir() string {
	return s.dir
}

// Save записывает содержимое в новый файл и возвращает его имя.
func (s *Storage) Save(originalName string, src io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(originalName)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return name, nil
}

// Remove удаляет ранее сохранённый файл. Отсутствие файла не считается ошибкой.
func (s *Storage) Remove(name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

// sanitizeExt оставляет от исходного имени только безопасное расширение.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || strings.ContainsAny(ext, `/\`) || len(ext) > 8 {
		return ""
	}
	return ext
}
