package documents

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry одна пара ключ-значение JSON-объекта
type Entry[T any] struct {
	Key   string
	Value T
}

// Entries JSON-объект, который сохраняет порядок ключей из файла.
// Наборы контактов и событий выводятся в том порядке, в котором их записали.
type Entries[T any] []Entry[T]

// Get возвращает значение по ключу
func (e Entries[T]) Get(key string) (T, bool) {
	for _, entry := range e {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	var zero T
	return zero, false
}

// Set заменяет значение существующего ключа или добавляет его в конец
func (e *Entries[T]) Set(key string, value T) {
	for i := range *e {
		if (*e)[i].Key == key {
			(*e)[i].Value = value
			return
		}
	}
	*e = append(*e, Entry[T]{Key: key, Value: value})
}

// Keys возвращает ключи в исходном порядке
func (e Entries[T]) Keys() []string {
	keys := make([]string, len(e))
	for i, entry := range e {
		keys[i] = entry.Key
	}
	return keys
}

func (e *Entries[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ожидался JSON-объект, получено %v", tok)
	}

	result := Entries[T]{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("неверный ключ объекта: %v", tok)
		}

		var value T
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("запись %q: %w", key, err)
		}
		result.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*e = result
	return nil
}

func (e Entries[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := marshalNoEscape(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("запись %q: %w", entry.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Text строковое поле, которое в файле может быть записано и строкой, и числом
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("ожидалась строка или число: %w", err)
		}
		*t = Text(n.String())
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if isNumber(string(t)) {
		return []byte(t), nil
	}
	return marshalNoEscape(string(t))
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

func (t Text) String() string { return string(t) }
