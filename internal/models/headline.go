package models

// Headline — нормализованный элемент RSS-ленты.
//
//   - Title — заголовок без обрамляющих пробелов;
//   - URL — каноническая ссылка (без фрагмента и трекинговых параметров);
//   - Summary — краткое описание без HTML-разметки, не длиннее 240 символов.
type Headline struct {
	Title   string
	URL     string
	Summary string
}
