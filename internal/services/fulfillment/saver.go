package fulfillment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskSaver сохраняет загруженные файлы в каталог загрузок.
type DiskSaver struct {
	Dir string
}

// NewDiskSaver создаёт DiskSaver и каталог загрузок, если его ещё нет.
func NewDiskSaver(dir string) (*DiskSaver, error) {
	const op = "fulfillment.NewDiskSaver"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &DiskSaver{Dir: dir}, nil
}

// Save записывает файл в каталог загрузок. Имя файла очищается от
// разделителей пути, чтобы запись не вышла за пределы каталога.
func (d *DiskSaver) Save(filename string, data []byte) error {
	const op = "fulfillment.DiskSaver.Save"

	clean := sanitizeFilename(filename)
	if clean == "" {
		return fmt.Errorf("%s: empty filename", op)
	}
	if err := os.WriteFile(filepath.Join(d.Dir, clean), data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return strings.TrimSpace(replacer.Replace(name))
}
