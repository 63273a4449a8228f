package handlers

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/format"
)

func (r *Router) handleStart(_ context.Context, msg Message, _ []string) (Reply, error) {
	return Reply{Text: format.Welcome(msg.FirstName), Summary: "Приветственное сообщение", ShowMenu: true}, nil
}

func (r *Router) handleHelp(context.Context, Message, []string) (Reply, error) {
	return Reply{Text: format.HelpText, Summary: "Справка по командам", ShowMenu: true}, nil
}

func (r *Router) handleContacts(context.Context, Message, []string) (Reply, error) {
	contacts, err := r.docs.Contacts()
	if r.isMissing(documents.ContactsFile, err) {
		contacts = nil
	}
	return Reply{Text: format.Contacts(contacts), Summary: "Показаны контакты"}, nil
}

func (r *Router) handleEvents(context.Context, Message, []string) (Reply, error) {
	events, err := r.docs.Events()
	if r.isMissing(documents.EventsFile, err) {
		events = nil
	}

	text, skipped := format.Events(events, r.Now())
	for _, s := range skipped {
		r.log.Warn("Пропущено событие с неверной датой", zap.String("event", s.Name), zap.Error(s.Err))
	}
	return Reply{Text: text, Summary: "Показаны события"}, nil
}

func (r *Router) handleProducts(context.Context, Message, []string) (Reply, error) {
	catalog, err := r.docs.Catalog()
	if r.isMissing(documents.ProductsFile, err) {
		catalog = nil
	}
	return Reply{Text: format.Products(catalog), Summary: "Показаны товары"}, nil
}

func (r *Router) handleAbout(context.Context, Message, []string) (Reply, error) {
	info, err := r.docs.Company()
	if r.isMissing(documents.CompanyFile, err) {
		info = nil
	}
	return Reply{Text: format.Company(info), Summary: "Информация о компании"}, nil
}

func (r *Router) handleDigest(context.Context, Message, []string) (Reply, error) {
	text, err := r.digest.Text()
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Summary: "Показан дайджест"}, nil
}

func (r *Router) handleDebug(context.Context, Message, []string) (Reply, error) {
	info := format.DebugInfo{DatabaseAvailable: r.store != nil}

	events, err := r.docs.Events()
	if r.isMissing(documents.EventsFile, err) {
		events = nil
	}
	contacts, err := r.docs.Contacts()
	if r.isMissing(documents.ContactsFile, err) {
		contacts = nil
	}

	info.Files = []format.FileStatus{
		{Name: documents.EventsFile, Exists: r.docs.Exists(documents.EventsFile), Count: len(events), Noun: "событий"},
		{Name: documents.ContactsFile, Exists: r.docs.Exists(documents.ContactsFile), Count: len(contacts), Noun: "контактов"},
		{Name: documents.CompanyFile, Exists: r.docs.Exists(documents.CompanyFile), Count: -1},
		{Name: documents.ProductsFile, Exists: r.docs.Exists(documents.ProductsFile), Count: -1},
	}

	if r.store != nil {
		_, statErr := os.Stat(r.store.Path())
		info.Files = append(info.Files, format.FileStatus{Name: r.store.Path(), Exists: statErr == nil, Count: -1})
	}

	return Reply{Text: format.Debug(info), Summary: "Показана отладочная информация"}, nil
}
