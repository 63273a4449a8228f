// Package digest собирает ежедневную сводку из наборов данных.
package digest

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/format"
	"github.com/awhatson15/gameboard-bot/utils"
)

// Source наборы данных, из которых строится дайджест
type Source interface {
	Contacts() (documents.Entries[documents.Contact], error)
	Events() (documents.Entries[documents.Event], error)
	Company() (*documents.CompanyInfo, error)
	Catalog() (*documents.Catalog, error)
}

// Aggregator строит дайджест. Ничего не записывает.
type Aggregator struct {
	source Source
	log    *zap.Logger

	// Now возвращает текущее время, подменяется в тестах
	Now func() time.Time
}

// New создает агрегатор поверх источника данных
func New(source Source, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{source: source, log: log, Now: time.Now}
}

// Collect собирает данные дайджеста. Отсутствующие наборы считаются пустыми,
// ошибка возвращается, только если не удалось прочитать ни одного набора.
func (a *Aggregator) Collect() (format.DigestData, error) {
	var data format.DigestData
	var errs []error

	company, err := a.source.Company()
	if a.keep(documents.CompanyFile, err, &errs) {
		data.Company = company
	}

	contacts, err := a.source.Contacts()
	if a.keep(documents.ContactsFile, err, &errs) {
		data.Contacts = len(contacts)
	}

	catalog, err := a.source.Catalog()
	if a.keep(documents.ProductsFile, err, &errs) {
		data.Products = len(catalog.Products)
	}

	events, err := a.source.Events()
	if a.keep(documents.EventsFile, err, &errs) {
		data.Upcoming = a.upcoming(events)
	}

	if len(errs) == 4 {
		return data, fmt.Errorf("не удалось прочитать данные для дайджеста: %w", errors.Join(errs...))
	}
	return data, nil
}

// Text собирает и форматирует дайджест
func (a *Aggregator) Text() (string, error) {
	data, err := a.Collect()
	if err != nil {
		return "", err
	}
	return format.Digest(data), nil
}

func (a *Aggregator) upcoming(events documents.Entries[documents.Event]) []format.UpcomingEvent {
	today := a.Now()
	var upcoming []format.UpcomingEvent
	for _, e := range events {
		date, err := utils.ParseDate(string(e.Value.Date))
		if err != nil {
			a.log.Warn("Пропущено событие с неверной датой", zap.String("event", e.Key), zap.Error(err))
			continue
		}
		days := utils.DaysBetween(today, date)
		if format.InDigestWindow(days) {
			upcoming = append(upcoming, format.UpcomingEvent{Name: e.Key, Event: e.Value, Days: days})
		}
	}
	return upcoming
}

// keep сообщает, можно ли использовать набор. Отсутствие файла не ошибка, но и данных нет.
func (a *Aggregator) keep(name string, err error, errs *[]error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, documents.ErrMissing):
		return false
	default:
		a.log.Error("Ошибка чтения набора данных для дайджеста", zap.String("file", name), zap.Error(err))
		*errs = append(*errs, err)
		return false
	}
}
