// rss - реализует pipeline.Parser для RSS 2.0.
package rss

// rss - корневая структура RSS-ленты.
type rss struct {
	Channel channel `xml:"channel"`
}

// channel - RSS-канал, содержащий список записей.
type channel struct {
	Items []item `xml:"item"`
}

// item описывает одну запись RSS-ленты.
type item struct {
	// Title — заголовок записи.
	Title string `xml:"title"`
	// Link — ссылка на материал. Может быть пустым/мусорным у некоторых издателей,
	// тогда рассматриваем guid (если он — полноценный URL) как fallback.
	Link string `xml:"link"`
	// GUID — «перманентный» идентификатор записи. У некоторых источников он
	// содержит URL и может использоваться как Link, даже если isPermaLink="false".
	GUID guid `xml:"guid"`
	// Description — краткое описание/тизер. Часто приходит внутри CDATA и с HTML.
	Description string `xml:"description"`
}

// guid — обёртка над <guid> с атрибутом isPermaLink.
type guid struct {
	// IsPermaLink — строковый флаг "true"/"false".
	IsPermaLink string `xml:"isPermaLink,attr"`
	// Value — текстовое содержимое <guid>.
	Value string `xml:",chardata"`
}
