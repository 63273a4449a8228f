package documents

import (
	"fmt"
	"time"
)

// SampleContacts демонстрационный набор контактов
func SampleContacts() Entries[Contact] {
	return Entries[Contact]{
		{Key: "Анна Смирнова", Value: Contact{
			Position: "Руководитель мастерской",
			Phone:    "+7 (900) 123-45-67",
			Email:    "anna@gamebored.ru",
			Comment:  "Вопросы по срокам и крупным заказам",
		}},
		{Key: "Дмитрий Козлов", Value: Contact{
			Position: "Дизайнер",
			Phone:    "+7 (900) 765-43-21",
			Email:    "design@gamebored.ru",
			Comment:  "Макеты карточек и коробок",
		}},
		{Key: "Мария Белова", Value: Contact{
			Position: "Менеджер по продукту",
			Email:    "maria@gamebored.ru",
		}},
	}
}

// SampleEvents демонстрационный набор акций, даты считаются от today
func SampleEvents(today time.Time) Entries[Event] {
	date := func(days int) Text {
		return Text(today.AddDate(0, 0, days).Format("2006-01-02"))
	}
	return Entries[Event]{
		{Key: "Скидка выходного дня", Value: Event{
			Date:        date(2),
			Type:        "акция",
			Description: "Минус 10% на все персонализированные игры",
			Status:      "активно",
		}},
		{Key: "Игротека в коворкинге", Value: Event{
			Date:        date(6),
			Type:        "мероприятие",
			Description: "Играем в новые версии Мафии и Мемо",
		}},
		{Key: "Новогодняя коллекция", Value: Event{
			Date:        date(30),
			Type:        "запуск",
			Description: "Старт предзаказов на новогодние наборы",
			Status:      "планируется",
		}},
	}
}

// SampleCompany демонстрационные сведения о компании
func SampleCompany() *CompanyInfo {
	return &CompanyInfo{
		Name:        "GameBored",
		Description: "Творческая мастерская по кастомизации настольных игр.",
		Email:       "gamebored@yandex.ru",
		Address:     "СПб и по России",
		Industry:    "Кастомизация настольных игр",
		Mission:     "Делать игры, в которых узнаешь своих друзей",
	}
}

// SampleCatalog демонстрационный каталог товаров
func SampleCatalog() *Catalog {
	return &Catalog{
		Products: Entries[Product]{
			{Key: "mafia", Value: Product{
				Name:          "Персонализированная Мафия",
				Price:         "1790",
				OriginalPrice: "2190",
				Discount:      "18%",
				Description:   "Карты ролей с фотографиями ваших друзей",
				DeliveryTime:  "5-7 дней",
			}},
			{Key: "memo", Value: Product{
				Name:         "Мемо",
				Price:        "1990",
				Description:  "Парные карточки с вашими снимками",
				DeliveryTime: "3-5 дней",
			}},
			{Key: "alias", Value: Product{
				Name:         "Элиас",
				Price:        "2500",
				Description:  "Слова и темы, понятные только вашей компании",
				DeliveryTime: "7-10 дней",
			}},
		},
		CurrentPromotions: []string{
			"Вторая игра со скидкой 15%",
			"Бесплатная доставка по СПб от 3000 руб.",
		},
	}
}

// Seed записывает демонстрационные наборы данных.
// Существующие файлы не перезаписываются, если force равен false. Возвращает имена записанных файлов.
func Seed(s *Store, today time.Time, force bool) ([]string, error) {
	sets := []struct {
		name string
		data any
	}{
		{ContactsFile, SampleContacts()},
		{EventsFile, SampleEvents(today)},
		{CompanyFile, SampleCompany()},
		{ProductsFile, SampleCatalog()},
	}

	var written []string
	for _, set := range sets {
		if !force && s.Exists(set.name) {
			continue
		}
		if err := s.Save(set.name, set.data); err != nil {
			return written, fmt.Errorf("не удалось записать %s: %w", set.name, err)
		}
		written = append(written, set.name)
	}
	return written, nil
}
