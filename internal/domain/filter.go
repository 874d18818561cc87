package domain

import "strings"

// FilterByTerm фильтрует коллекцию по подстроке без учёта регистра.
// Пустой (или состоящий из пробелов) запрос возвращает вход без изменений -
// отсутствие фильтра, а не "отфильтровать всё". Сущность остаётся в выборке,
// если хотя бы одно из полей содержит запрос. Порядок входа сохраняется.
func FilterByTerm[T any](items []T, term string, fields []func(T) string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}

	return filtered
}
