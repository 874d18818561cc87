// Package docs AdSpace Discovery API.
//
// Сервис геопространственного поиска рекламных площадок.
// Ведёт discovery-сессии: загрузка каталога properties, текстовый фильтр,
// ранжирование по удалённости от центра viewport и двухуровневая
// навигация property -> advertising areas.
//
// Основные возможности:
// - Discovery-сессии с фильтрацией и ранжированием по близости
// - Детализация property до списка его рекламных зон
// - Геолокация клиента по IP для начального центра карты
// - Статистика discovery-событий
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
