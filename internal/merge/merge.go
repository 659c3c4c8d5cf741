// merge — соединение постов с интеракционными записями по идентичности.
//
// Порядок входной последовательности постов сохраняется: id постов монотонны
// по времени создания, но страница бэкенда отсортирована по updateAt
// (reverse-chronological), поэтому пересортировка по id ломала бы семантику
// курсора пагинации. Вместо сортировки и поиска строится индекс id -> позиция.
package merge

import "github.com/pribylovaa/go-social-gateway/internal/models"

// Posts вливает записи records в посты items по равенству идентификаторов.
//
// Контракт:
//   - порядок и состав items не меняются: len(result) == len(items) всегда;
//   - запись без парного поста (контент удалён между волнами) молча
//     отбрасывается — это штатная ветка, не ошибка;
//   - пост без парной записи сохраняет нулевые интеракционные поля;
//   - операция не может завершиться ошибкой.
//
// Возвращает посты и количество применённых записей (для диагностики).
func Posts(items []models.Post, records []models.PostStats) ([]models.Post, int) {
	if len(items) == 0 {
		return items, 0
	}

	// Индекс строится один раз на вызов; при дублях id выигрывает первый пост.
	index := make(map[string]int, len(items))
	for i := range items {
		if _, ok := index[items[i].ID]; !ok {
			index[items[i].ID] = i
		}
	}

	applied := 0
	for r := range records {
		i, ok := index[records[r].PostID]
		if !ok {
			continue
		}

		apply(&items[i], &records[r])
		applied++
	}

	return items, applied
}

// One вливает одну запись в один пост.
//
// Асимметрия по комментариям намеренная: запись с пустым списком означает
// "нет информации", а не "комментариев нет" — затирать уже известные
// комментарии поста нельзя. Likes/Views/Liked перезаписываются всегда.
func One(item *models.Post, record *models.PostStats) {
	if item == nil || record == nil {
		return
	}

	if len(record.Comments) > 0 {
		item.Comments = record.Comments
	}

	item.Likes = record.Likes
	item.Views = record.Views
	item.Liked = record.Liked
}

// apply — безусловная перезапись интеракционных полей поста из записи.
// Используется в страничном merge-join, где обе волны одного возраста
// и запись считается полным источником истины.
func apply(item *models.Post, record *models.PostStats) {
	item.Comments = record.Comments
	item.Likes = record.Likes
	item.Views = record.Views
	item.Liked = record.Liked
}
