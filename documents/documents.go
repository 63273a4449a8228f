// Package documents читает и записывает JSON-наборы данных бота:
// контакты, события, информацию о компании и каталог товаров.
package documents

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Имена файлов наборов данных
const (
	ContactsFile = "contacts.json"
	EventsFile   = "events.json"
	CompanyFile  = "company_info.json"
	ProductsFile = "products.json"
)

// ErrMissing файл набора данных отсутствует или пуст
var ErrMissing = errors.New("набор данных отсутствует")

// Contact карточка сотрудника
type Contact struct {
	Position Text `json:"position,omitempty"`
	Phone    Text `json:"phone,omitempty"`
	Email    Text `json:"email,omitempty"`
	Comment  Text `json:"comment,omitempty"`
}

// Event акция или мероприятие. Date хранится как ГГГГ-ММ-ДД.
type Event struct {
	Date        Text `json:"date"`
	Type        Text `json:"type,omitempty"`
	Description Text `json:"description,omitempty"`
	Status      Text `json:"status,omitempty"`
}

// CompanyInfo сведения о компании
type CompanyInfo struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Mission     string `json:"mission,omitempty"`
}

// IsZero сообщает, что ни одно поле не заполнено
func (c *CompanyInfo) IsZero() bool {
	return c == nil || *c == CompanyInfo{}
}

// Product позиция каталога
type Product struct {
	Name          string `json:"name"`
	Price         Text   `json:"price"`
	OriginalPrice Text   `json:"original_price,omitempty"`
	Discount      Text   `json:"discount,omitempty"`
	Description   string `json:"description,omitempty"`
	DeliveryTime  string `json:"delivery_time,omitempty"`
}

// Catalog каталог товаров и текущие акции
type Catalog struct {
	Products          Entries[Product] `json:"products"`
	CurrentPromotions []string         `json:"current_promotions,omitempty"`
}

// Store работает с JSON-файлами в одной директории
type Store struct {
	dir string
	log *zap.Logger
}

// New создает хранилище документов и директорию для него
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir возвращает директорию с данными
func (s *Store) Dir() string {
	return s.dir
}

// Path возвращает полный путь к файлу набора данных
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists проверяет наличие файла набора данных
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Load читает набор данных в v.
// Отсутствующий или пустой файл дает ErrMissing, ошибки чтения и разбора логируются.
func (s *Store) Load(name string, v any) error {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrMissing
		}
		s.log.Error("Ошибка при чтении файла данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при чтении %s: %w", name, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ErrMissing
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.log.Error("Ошибка при разборе файла данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при разборе %s: %w", name, err)
	}

	return nil
}

// Save записывает набор данных с отступами и без экранирования не-ASCII символов.
// Запись идет через временный файл, последний писатель побеждает.
func (s *Store) Save(name string, v any) error {
	path := s.Path(name)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		s.log.Error("Не удалось создать директорию данных", zap.String("dir", s.dir), zap.Error(err))
		return fmt.Errorf("не удалось создать директорию данных: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.log.Error("Ошибка при сериализации данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при сериализации %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		s.log.Error("Ошибка при сохранении файла данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при сохранении %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		s.log.Error("Ошибка при сохранении файла данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при сохранении %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		s.log.Error("Ошибка при сохранении файла данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при сохранении %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		s.log.Error("Ошибка при сохранении файла данных", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("ошибка при сохранении %s: %w", name, err)
	}

	return nil
}

// Contacts загружает контакты команды
func (s *Store) Contacts() (Entries[Contact], error) {
	return loadEntries[Contact](s, ContactsFile)
}

// Events загружает акции и мероприятия
func (s *Store) Events() (Entries[Event], error) {
	return loadEntries[Event](s, EventsFile)
}

// Company загружает сведения о компании
func (s *Store) Company() (*CompanyInfo, error) {
	var info CompanyInfo
	if err := s.Load(CompanyFile, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Catalog загружает каталог товаров. Товары с неверными полями пропускаются.
func (s *Store) Catalog() (*Catalog, error) {
	var raw struct {
		Products          Entries[json.RawMessage] `json:"products"`
		CurrentPromotions []string                 `json:"current_promotions"`
	}
	if err := s.Load(ProductsFile, &raw); err != nil {
		return nil, err
	}
	return &Catalog{
		Products:          decodeEntries[Product](s.log.With(zap.String("file", ProductsFile)), raw.Products),
		CurrentPromotions: raw.CurrentPromotions,
	}, nil
}

// loadEntries читает JSON-объект набора данных и разбирает каждую запись отдельно
func loadEntries[T any](s *Store, name string) (Entries[T], error) {
	var raw Entries[json.RawMessage]
	if err := s.Load(name, &raw); err != nil {
		return nil, err
	}
	return decodeEntries[T](s.log.With(zap.String("file", name)), raw), nil
}

// decodeEntries разбирает записи по одной. Запись, которую не удалось разобрать, пропускается.
func decodeEntries[T any](log *zap.Logger, raw Entries[json.RawMessage]) Entries[T] {
	entries := make(Entries[T], 0, len(raw))
	for _, entry := range raw {
		var value T
		if err := json.Unmarshal(entry.Value, &value); err != nil {
			log.Warn("Запись пропущена", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		entries = append(entries, Entry[T]{Key: entry.Key, Value: value})
	}
	return entries
}
