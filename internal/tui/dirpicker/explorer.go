package dirpicker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry - строка обозревателя
type Entry struct {
	Name string
	Path string
}

// ParentName - имя строки перехода в родительскую папку
const ParentName = ".."

// Explorer перечисляет вложенные папки текущей папки
type Explorer struct {
	CurrentPath string
	Entries     []Entry
	Error       error
	ShowHidden  bool
}

// NewExplorer создает обозреватель; пустой startPath означает текущую папку
func NewExplorer(startPath string) *Explorer {
	if startPath == "" {
		startPath, _ = os.Getwd()
	}
	if abs, err := filepath.Abs(startPath); err == nil {
		startPath = abs
	}

	e := &Explorer{CurrentPath: startPath}
	e.Load()
	return e
}

// Load перечитывает текущую папку. Ошибка чтения сохраняется в Error,
// прежний список при этом не меняется.
func (e *Explorer) Load() {
	entries, err := os.ReadDir(e.CurrentPath)
	if err != nil {
		e.Error = err
		return
	}

	e.Entries = []Entry{}
	e.Error = nil

	parent := filepath.Dir(e.CurrentPath)
	if parent != e.CurrentPath {
		e.Entries = append(e.Entries, Entry{Name: ParentName, Path: parent})
	}

	var dirs []Entry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !e.ShowHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, Entry{
			Name: entry.Name(),
			Path: filepath.Join(e.CurrentPath, entry.Name()),
		})
	}
	sort.Slice(dirs, func(i, j int) bool {
		return strings.ToLower(dirs[i].Name) < strings.ToLower(dirs[j].Name)
	})

	e.Entries = append(e.Entries, dirs...)
}

// Enter переходит в папку из строки index
func (e *Explorer) Enter(index int) bool {
	if index < 0 || index >= len(e.Entries) {
		return false
	}
	return e.cd(e.Entries[index].Path)
}

// Parent переходит в родительскую папку
func (e *Explorer) Parent() bool {
	parent := filepath.Dir(e.CurrentPath)
	if parent == e.CurrentPath {
		return false
	}
	return e.cd(parent)
}

// ToggleHidden переключает показ скрытых папок
func (e *Explorer) ToggleHidden() {
	e.ShowHidden = !e.ShowHidden
	e.Load()
}

func (e *Explorer) cd(path string) bool {
	prev := e.CurrentPath
	e.CurrentPath = path
	e.Load()
	if e.Error != nil {
		e.CurrentPath = prev
		return false
	}
	return true
}
