package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Listing 是一次成功上架的记录。
type Listing struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Image    string    `json:"image,omitempty"`
	Message  string    `json:"message,omitempty"`
	TS       time.Time `json:"ts"`
}

// Store 以 JSONL 追加写入上架记录。
type Store struct {
	Path string
	// Clock 仅供测试替换。
	Clock func() time.Time
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mercari", "listings.jsonl"), nil
}

func NewDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return &Store{Path: path}, nil
}

func (s *Store) ensureDir() error {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return errors.New("listing journal path is empty")
	}
	return os.MkdirAll(filepath.Dir(s.Path), 0o755)
}

func (s *Store) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Append 记录一次上架；名称为空时忽略。
func (s *Store) Append(l Listing) error {
	if s == nil {
		return errors.New("listing journal is nil")
	}
	l.Name = strings.TrimSpace(l.Name)
	l.Category = strings.TrimSpace(l.Category)
	if l.Name == "" {
		return nil
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if l.TS.IsZero() {
		l.TS = s.now()
	}
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// Load 按写入顺序返回记录，跳过损坏的行；文件不存在时返回空。
func (s *Store) Load() ([]Listing, error) {
	if s == nil {
		return nil, errors.New("listing journal is nil")
	}
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("listing journal path is empty")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var out []Listing
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var l Listing
		if err := json.Unmarshal([]byte(line), &l); err != nil {
			continue
		}
		if strings.TrimSpace(l.Name) == "" {
			continue
		}
		out = append(out, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories 返回用过的分类，旧的在前，重复项只保留最近一次。
func Categories(listings []Listing) []string {
	last := map[string]int{}
	for i, l := range listings {
		if c := strings.TrimSpace(l.Category); c != "" {
			last[c] = i
		}
	}
	out := make([]string, 0, len(last))
	for i, l := range listings {
		c := strings.TrimSpace(l.Category)
		if c != "" && last[c] == i {
			out = append(out, c)
		}
	}
	return out
}
